// Package export renders recipes to paginated documents and stores the
// result as a downloadable artifact.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/deliciously/internal/blob"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

// Page geometry in points.
const (
	Margin        = 40.0
	PageThreshold = 720.0
)

// FavoritesFilename is the artifact name for the bulk favorites export.
const FavoritesFilename = "favorites.pdf"

const contentType = "application/pdf"

// style holds the per-document type sizes and line advances.
type style struct {
	titleSize    float64
	titleAdvance float64
	bodySize     float64
	catAdvance   float64
	headAdvance  float64
	itemAdvance  float64
	bullet       func(i int) string
}

var single = style{
	titleSize:    20,
	titleAdvance: 24,
	bodySize:     12,
	catAdvance:   20,
	headAdvance:  16,
	itemAdvance:  14,
	bullet:       func(i int) string { return fmt.Sprintf("%d. ", i+1) },
}

var bulk = style{
	titleSize:    18,
	titleAdvance: 20,
	bodySize:     11,
	catAdvance:   18,
	headAdvance:  14,
	itemAdvance:  12,
	bullet:       func(int) string { return "- " },
}

// Adapter lays out documents through a DocumentExporter and stores the
// rendered bytes in a blob store.
type Adapter struct {
	exporter domain.DocumentExporter
	blobs    blob.Store
	log      *logger.Logger
}

// NewAdapter creates an export adapter.
func NewAdapter(exporter domain.DocumentExporter, store blob.Store, log *logger.Logger) *Adapter {
	return &Adapter{exporter: exporter, blobs: store, log: log}
}

// Filename returns the artifact name for a recipe export.
func Filename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "recipe"
	}
	title = strings.NewReplacer("/", "-", "\\", "-").Replace(title)
	return title + ".pdf"
}

// RecipeDocument renders a single recipe and stores it as <title>.pdf.
func (a *Adapter) RecipeDocument(ctx context.Context, r domain.Recipe) (blob.Info, error) {
	doc, err := a.exporter.NewDocument()
	if err != nil {
		return blob.Info{}, err
	}
	c := &cursor{doc: doc, y: Margin}
	c.recipe(r, single)
	return a.save(ctx, doc, Filename(r.Title))
}

// FavoritesDocument renders every recipe, one per page, into
// favorites.pdf. An empty list yields ErrNoFavorites.
func (a *Adapter) FavoritesDocument(ctx context.Context, recipes []domain.Recipe) (blob.Info, error) {
	if len(recipes) == 0 {
		return blob.Info{}, domain.ErrNoFavorites
	}
	doc, err := a.exporter.NewDocument()
	if err != nil {
		return blob.Info{}, err
	}
	c := &cursor{doc: doc, y: Margin}
	for i, r := range recipes {
		c.recipe(r, bulk)
		if i < len(recipes)-1 {
			c.newPage()
		}
	}
	return a.save(ctx, doc, FavoritesFilename)
}

// save renders doc fully into memory before handing it to the blob
// store, so a failed render never leaves a partial artifact.
func (a *Adapter) save(ctx context.Context, doc domain.Document, name string) (blob.Info, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return blob.Info{}, fmt.Errorf("render %s: %w", name, err)
	}
	info, err := a.blobs.Put(ctx, name, &buf, blob.PutOptions{ContentType: contentType})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store %s: %w", name, err)
	}
	a.log.Info("exported %s (%d bytes)", name, info.Size)
	return info, nil
}

type cursor struct {
	doc domain.Document
	y   float64
}

func (c *cursor) newPage() {
	c.doc.AddPage()
	c.y = Margin
}

func (c *cursor) line(x float64, s string, advance float64) {
	c.doc.Text(x, c.y, s)
	c.y += advance
}

func (c *cursor) recipe(r domain.Recipe, st style) {
	c.doc.SetFontSize(st.titleSize)
	c.line(Margin, r.Title, st.titleAdvance)
	c.doc.SetFontSize(st.bodySize)
	c.line(Margin, "Category: "+string(r.Category), st.catAdvance)

	c.section("Ingredients:", r.Ingredients, st)
	c.y += 8
	c.section("Instructions:", r.Instructions, st)
}

// section writes a header and its items. Only item lines trigger a page
// break.
func (c *cursor) section(header string, items []string, st style) {
	c.line(Margin, header, st.headAdvance)
	for i, it := range items {
		c.line(Margin+8, st.bullet(i)+it, st.itemAdvance)
		if c.y > PageThreshold {
			c.newPage()
		}
	}
}
