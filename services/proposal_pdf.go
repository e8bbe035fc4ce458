package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateProposalPDF creates the letter-proposal PDF using maroto/v2. The
// PDF is rebuilt from the proposal data, not from the stored HTML blob, so
// in-place HTML edits do not carry over to the PDF.
func GenerateProposalPDF(data ProposalData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addProposalHeader(m, data)
	addProposalAddressBlock(m, data)
	addProposalBody(m, data)
	addProposalPriceTable(m, data)
	addProposalClosing(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate proposal PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addProposalHeader(m core.Maroto, data ProposalData) {
	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(5).Add(
				text.New("PROPOSAL", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
		row.New(6).Add(
			col.New(7).Add(
				text.New(fmt.Sprintf("%s | %s | %s", data.CompanyAddress, data.CompanyPhone, data.CompanyEmail), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(5).Add(
				text.New(fmt.Sprintf("Quote %s — %s", data.QuoteNumber, data.Date), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		),
		row.New(4).Add(col.New(12).Add(line.New())),
	)
}

func addProposalAddressBlock(m core.Maroto, data ProposalData) {
	m.AddRows(
		row.New(6).Add(col.New(12).Add(
			text.New(data.ClientName, props.Text{Size: 10, Style: fontstyle.Bold}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(data.ClientCompany, props.Text{Size: 9}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(data.ClientAddress, props.Text{Size: 9}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New("Re: "+data.JobDescription, props.Text{Size: 10, Style: fontstyle.Bold, Top: 2}),
		)),
	)
}

func addProposalBody(m core.Maroto, data ProposalData) {
	standard := data.NetaStandard
	if standard == "" {
		standard = NetaStandardATS
	}
	body := fmt.Sprintf(
		"%s is pleased to submit the following proposal for the referenced scope of work. "+
			"All testing and commissioning will be performed in accordance with the %s "+
			"specifications, applicable NFPA 70E safety requirements, and the manufacturer's "+
			"published instructions.",
		data.CompanyName, standard,
	)
	m.AddRows(
		row.New(16).Add(col.New(12).Add(
			text.New(body, props.Text{Size: 9, Top: 2}),
		)),
	)
}

func addProposalPriceTable(m core.Maroto, data ProposalData) {
	headerStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	cellStyle := props.Text{Size: 9, Align: align.Left}

	m.AddRows(
		row.New(7).Add(
			col.New(4).Add(text.New("Payment Terms", headerStyle)),
			col.New(4).Add(text.New("Price", headerStyle)),
		),
		row.New(6).Add(
			col.New(4).Add(text.New("NET 30", cellStyle)),
			col.New(4).Add(text.New(FormatWholeUSD(data.Net30), cellStyle)),
		),
		row.New(6).Add(
			col.New(4).Add(text.New("NET 60", cellStyle)),
			col.New(4).Add(text.New(FormatWholeUSD(data.Net60), cellStyle)),
		),
		row.New(6).Add(
			col.New(4).Add(text.New("NET 90", cellStyle)),
			col.New(4).Add(text.New(FormatWholeUSD(data.Net90), cellStyle)),
		),
	)

	if data.MobilizationFee > 0 {
		m.AddRows(
			row.New(8).Add(col.New(12).Add(
				text.New(fmt.Sprintf(
					"A mobilization fee of %s is due prior to the start of work and is included in the prices above.",
					FormatWholeUSD(data.MobilizationFee),
				), props.Text{Size: 9, Top: 2}),
			)),
		)
	}
}

func addProposalClosing(m core.Maroto, data ProposalData) {
	closing := fmt.Sprintf(
		"This proposal is valid for %d days from the date above. Pricing assumes unobstructed "+
			"access to all equipment during the scheduled period of performance; switching, "+
			"lockout/tagout and re-energization are to be performed by others unless noted. "+
			"We appreciate the opportunity to quote this work.",
		data.ValidityDays,
	)
	m.AddRows(
		row.New(18).Add(col.New(12).Add(
			text.New(closing, props.Text{Size: 9, Top: 2}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New("Sincerely,", props.Text{Size: 9, Top: 4}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(data.CompanyName, props.Text{Size: 9, Style: fontstyle.Bold}),
		)),
	)
}
