package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures all CRM collections exist:
// customers, contacts, opportunities, estimates, letter_proposals,
// interactions, surveys and documents.
func Setup(app *pocketbase.PocketBase) {
	customers := ensureCollection(app, "customers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "company_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"lead", "active", "inactive"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "contacts", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "customer",
			Required:      true,
			CollectionId:  customers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "first_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "last_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "title", Required: false})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_primary"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	opportunities := ensureCollection(app, "opportunities", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "customer",
			Required:      true,
			CollectionId:  customers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"open", "quoted", "won", "lost"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "value", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	estimates := ensureCollection(app, "estimates", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "opportunity",
			Required:      true,
			CollectionId:  opportunities.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.JSONField{Name: "data", MaxSize: 2 << 20})
		c.Fields.Add(&core.JSONField{Name: "travel_data", MaxSize: 1 << 20})
		c.Fields.Add(&core.TextField{Name: "display_number", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "letter_proposals", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "estimate",
			Required:      true,
			CollectionId:  estimates.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.EditorField{Name: "html"})
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "neta_standard",
			Required:  false,
			Values:    []string{"NETA ATS", "NETA MTS"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "interactions", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "customer",
			Required:      true,
			CollectionId:  customers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"call", "email", "meeting", "site_visit"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "occurred_at", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "surveys", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "customer",
			Required:      true,
			CollectionId:  customers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "quality", Required: true})
		c.Fields.Add(&core.NumberField{Name: "timeliness", Required: true})
		c.Fields.Add(&core.NumberField{Name: "communication", Required: true})
		c.Fields.Add(&core.NumberField{Name: "value", Required: true})
		c.Fields.Add(&core.TextField{Name: "comments", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "documents", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "customer",
			Required:      true,
			CollectionId:  customers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.FileField{Name: "file", MaxSelect: 1, MaxSize: 25 << 20})
		c.Fields.Add(&core.TextField{Name: "storage_key", Required: false})
		c.Fields.Add(&core.TextField{Name: "content_type", Required: false})
		c.Fields.Add(&core.NumberField{Name: "size", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
