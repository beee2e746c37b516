package console

import (
	"fmt"
	"io"
	"os"

	"sample-data-seeder/internal/seeder/domain/model"
	"sample-data-seeder/internal/seeder/domain/repository"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Reporter prints human-readable seeding output. It is not meant to be parsed.
type Reporter struct {
	out io.Writer
}

var _ repository.Reporter = (*Reporter)(nil)

// NewReporter writes to out, or stdout when out is nil.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

func (r *Reporter) newTable(title, first string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{first, "Documents"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return t
}

// FixtureTable prints the per-file record counts found in the fixture directory.
func (r *Reporter) FixtureTable(rows []model.FixtureSummary) {
	t := r.newTable("Sample data files", "File")
	total := 0
	for _, row := range rows {
		t.AppendRow(table.Row{row.File, row.Documents})
		total += row.Documents
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
}

// CountTable prints the document count of each collection. Rows whose count
// failed show "error" and are left out of the total.
func (r *Reporter) CountTable(rows []model.CollectionCount) {
	t := r.newTable("Documents in database", "Collection")
	var total int64
	for _, row := range rows {
		if row.Err != nil {
			t.AppendRow(table.Row{row.Collection.Name, "error"})
			continue
		}
		t.AppendRow(table.Row{row.Collection.Name, row.Documents})
		total += row.Documents
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
}

// Loaded confirms a collection insert.
func (r *Reporter) Loaded(collection model.Collection, documents int) {
	fmt.Fprintf(r.out, "Loaded %d documents into %s\n", documents, collection.Name)
}

// Skipped reports a collection name that is not part of the registry.
func (r *Reporter) Skipped(name string) {
	fmt.Fprintf(r.out, "Skipping unknown collection %q\n", name)
}
