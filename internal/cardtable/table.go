// Package cardtable joins card records with their metadata and renders the result.
package cardtable

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/mselser95/hearthstone-cards/pkg/types"
)

//go:embed templates/card_info.html
var templateFS embed.FS

//nolint:gochecknoglobals // parsed once at init
var pageTemplate = template.Must(
	template.New("card_info.html").
		Funcs(template.FuncMap{"value": value}).
		ParseFS(templateFS, "templates/card_info.html"),
)

// Row is one flattened card as displayed in the table.
// Joined fields are nil when the id is missing from its metadata table.
type Row struct {
	ID     int     `json:"id"`
	Image  string  `json:"image"`
	Name   string  `json:"name"`
	Type   *string `json:"Type"`
	Rarity *string `json:"Rarity"`
	Set    *string `json:"Set"`
	Class  *string `json:"Class"`
}

// Join builds one row per card, in card order.
func Join(cards []types.Card, md types.Metadata) []Row {
	rows := make([]Row, 0, len(cards))

	for _, card := range cards {
		rows = append(rows, Row{
			ID:     card.ID,
			Image:  card.Image,
			Name:   card.Name,
			Type:   md.Types.Lookup(card.CardTypeID),
			Rarity: md.Rarities.Lookup(card.RarityID),
			Set:    md.Sets.Lookup(card.CardSetID),
			Class:  md.Classes.Lookup(card.ClassID),
		})
	}

	return rows
}

type page struct {
	Class string
	Rows  []Row
}

// RenderHTML writes the card page for class.
func RenderHTML(w io.Writer, class string, rows []Row) error {
	err := pageTemplate.Execute(w, page{Class: class, Rows: rows})
	if err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	return nil
}

// RenderText writes rows as an aligned text table.
func RenderText(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tTYPE\tRARITY\tSET\tCLASS\n")
	fmt.Fprintf(tw, "--\t----\t----\t------\t---\t-----\n")

	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			strconv.Itoa(row.ID), row.Name,
			orDash(row.Type), orDash(row.Rarity), orDash(row.Set), orDash(row.Class))
	}

	return tw.Flush()
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// Source provides the card listing and metadata tables to join.
type Source interface {
	Cards(ctx context.Context, class string) ([]types.Card, error)
	AllMetadata(ctx context.Context) (types.Metadata, error)
}

// Build fetches the cards of class and the metadata tables, then joins them.
// Cards are fetched first; any failure is terminal.
func Build(ctx context.Context, src Source, class string) ([]Row, error) {
	cards, err := src.Cards(ctx, class)
	if err != nil {
		return nil, err
	}

	md, err := src.AllMetadata(ctx)
	if err != nil {
		return nil, err
	}

	return Join(cards, md), nil
}
