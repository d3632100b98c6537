package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/canton-labs/create-canton-app/internal/toolchain"
	"github.com/canton-labs/create-canton-app/internal/ui"
)

// ErrCatalogEmpty signals that a dynamic listing produced no usable templates.
// It is never fatal; callers fall back to the static catalog.
var ErrCatalogEmpty = errors.New("toolchain reported no templates")

// SourceKind says where a template comes from.
type SourceKind int

const (
	// Static templates are bundled with this tool.
	Static SourceKind = iota
	// Dynamic templates are listed and generated by the active toolchain.
	Dynamic
)

func (k SourceKind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Entry is one selectable template.
type Entry struct {
	Label  string
	Source SourceKind
	ID     string
}

// staticEntries is the compiled-in list of bundled templates.
var staticEntries = []Entry{
	{Label: "Token Contract (fungible token like ERC20)", Source: Static, ID: "token"},
	{Label: "Escrow Contract (multi-party escrow)", Source: Static, ID: "escrow"},
	{Label: "Empty Template (blank starter)", Source: Static, ID: "empty"},
}

// StaticEntries returns a copy of the bundled template list.
func StaticEntries() []Entry {
	out := make([]Entry, len(staticEntries))
	copy(out, staticEntries)
	return out
}

// LookupStatic returns the bundled entry with the given id.
func LookupStatic(id string) (Entry, bool) {
	for _, e := range staticEntries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// DynamicEntry wraps a toolchain template identifier as an Entry.
func DynamicEntry(id string) Entry {
	return Entry{Label: id, Source: Dynamic, ID: id}
}

// Catalog lists templates. Exec is only needed for the dynamic source.
type Catalog struct {
	Exec *toolchain.ExecContext
	UI   *ui.Printer
}

// List returns the templates available from kind. For Dynamic it queries
// tc; any failure of the listing command yields an empty slice.
func (c *Catalog) List(ctx context.Context, kind SourceKind, tc toolchain.Toolchain) []Entry {
	if kind == Static {
		return StaticEntries()
	}

	out, err := c.Exec.Invoke(ctx, tc, "", tc.ListArgs...)
	if err != nil {
		if c.UI != nil {
			c.UI.Debug("%s failed: %v", tc.CommandLine(tc.ListArgs...), err)
		}
		return nil
	}

	ids := ParseListing(out.Stdout)
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, DynamicEntry(id))
	}
	return entries
}
