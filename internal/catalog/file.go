package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
	"github.com/example/aromance/internal/validation"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// Embedded returns the seed catalog shipped with the binary.
func Embedded() (*Static, error) {
	return Decode(bytes.NewReader(embeddedCatalog))
}

// LoadFile reads a JSON catalog from disk.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errx.New(errx.KindConfig, "open catalog", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a JSON array of products, validates each entry and rejects
// duplicate identifiers. Products are ordered by position; entries without a
// position keep their file order after the positioned ones.
func Decode(r io.Reader) (*Static, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, errx.New(errx.KindConfig, "decode catalog", err)
	}

	seen := make(map[string]struct{}, len(products))
	for i := range products {
		products[i] = products[i].Normalize()
		p := &products[i]
		if err := validation.Struct(p); err != nil {
			return nil, errx.New(errx.KindConfig, fmt.Sprintf("catalog entry %d", i), err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, errx.Configf("catalog entry %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	sort.SliceStable(products, func(i, j int) bool {
		return positionKey(products[i]) < positionKey(products[j])
	})

	return NewStatic(products), nil
}

func positionKey(p models.Product) int {
	if p.Position <= 0 {
		return int(^uint(0) >> 1)
	}
	return p.Position
}
