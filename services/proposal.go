package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// NETA standard choices a proposal can reference.
const (
	NetaStandardATS = "NETA ATS"
	NetaStandardMTS = "NETA MTS"
)

// ProposalData is everything the letter proposal needs: company identity,
// client context and the selected estimate's computed price options.
type ProposalData struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	QuoteNumber    string
	Date           string
	ClientName     string
	ClientCompany  string
	ClientAddress  string
	JobDescription string
	Location       string
	NetaStandard   string

	Final           float64
	MobilizationFee float64
	Net30           float64
	Net60           float64
	Net90           float64

	ValidityDays int
}

// BuildProposalHTML renders the letter proposal body as a standalone HTML
// fragment. The result is stored on the proposal record and remains
// editable in place afterwards; regeneration overwrites any edits.
func BuildProposalHTML(data ProposalData) (string, error) {
	var b strings.Builder
	if err := proposalComponent(data).Render(context.Background(), &b); err != nil {
		return "", fmt.Errorf("render proposal html: %w", err)
	}
	return b.String(), nil
}

// proposalComponent builds the proposal as a templ component. The letter is
// data-driven rather than a page template, so it is assembled from runtime
// components instead of generated ones.
func proposalComponent(data ProposalData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := templ.EscapeString[string]

		write := func(parts ...string) error {
			for _, p := range parts {
				if _, err := io.WriteString(w, p); err != nil {
					return err
				}
			}
			return nil
		}

		standard := data.NetaStandard
		if standard == "" {
			standard = NetaStandardATS
		}

		if err := write(
			`<div class="letter-proposal">`,
			`<p class="letterhead"><strong>`, esc(data.CompanyName), `</strong><br>`,
			esc(data.CompanyAddress), `<br>`,
			esc(data.CompanyPhone), ` | `, esc(data.CompanyEmail), `</p>`,
			`<p class="quote-ref">Quote `, esc(data.QuoteNumber), ` &mdash; `, esc(data.Date), `</p>`,
		); err != nil {
			return err
		}

		if err := write(
			`<p>`, esc(data.ClientName), `<br>`,
			esc(data.ClientCompany), `<br>`,
			esc(data.ClientAddress), `</p>`,
			`<p>Re: <strong>`, esc(data.JobDescription), `</strong>`,
		); err != nil {
			return err
		}
		if data.Location != "" {
			if err := write(` at `, esc(data.Location)); err != nil {
				return err
			}
		}
		if err := write(`</p>`); err != nil {
			return err
		}

		if err := write(
			`<p>`, esc(data.CompanyName), ` is pleased to submit the following proposal `,
			`for the referenced scope of work. All testing and commissioning will be `,
			`performed in accordance with the `, esc(standard),
			` specifications, applicable NFPA 70E safety requirements, and the `,
			`manufacturer's published instructions.</p>`,
		); err != nil {
			return err
		}

		if err := write(
			`<table class="price-options"><thead><tr>`,
			`<th>Payment Terms</th><th>Price</th>`,
			`</tr></thead><tbody>`,
			`<tr><td>NET 30</td><td>`, esc(FormatWholeUSD(data.Net30)), `</td></tr>`,
			`<tr><td>NET 60</td><td>`, esc(FormatWholeUSD(data.Net60)), `</td></tr>`,
			`<tr><td>NET 90</td><td>`, esc(FormatWholeUSD(data.Net90)), `</td></tr>`,
			`</tbody></table>`,
		); err != nil {
			return err
		}

		if data.MobilizationFee > 0 {
			if err := write(
				`<p>A mobilization fee of `, esc(FormatWholeUSD(data.MobilizationFee)),
				` is due prior to the start of work and is included in the prices above.</p>`,
			); err != nil {
				return err
			}
		}

		return write(
			`<p>This proposal is valid for `, fmt.Sprintf("%d", data.ValidityDays),
			` days from the date above. Pricing assumes unobstructed access to all `,
			`equipment during the scheduled period of performance; switching, `,
			`lockout/tagout and re-energization are to be performed by others unless `,
			`noted. We appreciate the opportunity to quote this work.</p>`,
			`<p>Sincerely,<br>`, esc(data.CompanyName), `</p>`,
			`</div>`,
		)
	})
}
