package catalog

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// The backend is inconsistent about field casing: the same record may arrive
// as {"priceCents": ...} or {"PriceCents": ...}. Each canonical field is
// resolved through an ordered list of source keys; the first key that is
// present with a non-null value wins, otherwise the field's fallback applies.

// record is a decoded JSON object keyed by source field name.
type record map[string]jx.Raw

func parseRecord(data []byte) (record, error) {
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return nil, errors.New("record is not a JSON object")
	}
	rec := record{}
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		rec[string(key)] = raw
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode record")
	}
	return rec, nil
}

// lookup returns the value of the first key present with a non-null value.
func (r record) lookup(keys []string) (jx.Raw, bool) {
	for _, key := range keys {
		if raw, ok := r[key]; ok && raw.Type() != jx.Null {
			return raw, true
		}
	}
	return nil, false
}

// field maps one canonical field of T to its source keys.
type field[T any] struct {
	name     string
	keys     []string
	decode   func(d *jx.Decoder, v *T) error
	fallback func(v *T)
}

func casings(name string) []string {
	r, size := utf8.DecodeRuneInString(name)
	return []string{name, string(unicode.ToUpper(r)) + name[size:]}
}

func intField[T any](name string, set func(v *T, n int)) field[T] {
	return field[T]{
		name: name,
		keys: casings(name),
		decode: func(d *jx.Decoder, v *T) error {
			n, err := decodeInt(d)
			if err != nil {
				return err
			}
			set(v, n)
			return nil
		},
	}
}

// decodeInt reads a JSON number holding an integral value. Float notation
// such as 1999.0 or 2e3 is accepted; fractional values are not.
func decodeInt(d *jx.Decoder) (int, error) {
	if tt := d.Next(); tt != jx.Number {
		return 0, errors.Errorf("expected number, got %s", tt)
	}
	num, err := d.Num()
	if err != nil {
		return 0, err
	}
	raw := num.String()
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", raw)
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Errorf("%s is not an integer", raw)
	}
	return int(f), nil
}

func strField[T any](name string, set func(v *T, s string)) field[T] {
	return field[T]{
		name: name,
		keys: casings(name),
		decode: func(d *jx.Decoder, v *T) error {
			s, err := d.Str()
			if err != nil {
				return err
			}
			set(v, s)
			return nil
		},
	}
}

// apply evaluates the lookup table once against rec.
func apply[T any](rec record, table []field[T]) (T, error) {
	var v T
	for _, f := range table {
		raw, ok := rec.lookup(f.keys)
		if !ok {
			if f.fallback != nil {
				f.fallback(&v)
			}
			continue
		}
		if err := f.decode(jx.DecodeBytes(raw), &v); err != nil {
			return v, errors.Wrapf(err, "field %s", f.name)
		}
	}
	return v, nil
}

var categoryFields = []field[Category]{
	intField("id", func(c *Category, n int) { c.ID = n }),
	strField("name", func(c *Category, s string) { c.Name = s }),
	strField("slug", func(c *Category, s string) { c.Slug = s }),
}

var imageFields = []field[ProductImage]{
	intField("id", func(i *ProductImage, n int) { i.ID = n }),
	strField("url", func(i *ProductImage, s string) { i.URL = s }),
	withFallback(
		intField("sortOrder", func(i *ProductImage, n int) { i.SortOrder = n }),
		func(i *ProductImage) { i.SortOrder = 0 },
	),
}

var productFields = []field[Product]{
	intField("id", func(p *Product, n int) { p.ID = n }),
	intField("categoryId", func(p *Product, n int) { p.CategoryID = n }),
	strField("name", func(p *Product, s string) { p.Name = s }),
	withFallback(
		strField("description", func(p *Product, s string) { p.Description = &s }),
		func(p *Product) { p.Description = nil },
	),
	intField("priceCents", func(p *Product, n int) { p.PriceCents = n }),
	strField("currency", func(p *Product, s string) { p.Currency = s }),
	intField("stock", func(p *Product, n int) { p.Stock = n }),
	withFallback(
		field[Product]{
			name: "isActive",
			keys: casings("isActive"),
			decode: func(d *jx.Decoder, p *Product) (err error) {
				p.IsActive, err = d.Bool()
				return err
			},
		},
		func(p *Product) { p.IsActive = true },
	),
	withFallback(
		field[Product]{
			name:   "images",
			keys:   casings("images"),
			decode: decodeImages,
		},
		func(p *Product) { p.Images = []ProductImage{} },
	),
}

func withFallback[T any](f field[T], fallback func(v *T)) field[T] {
	f.fallback = fallback
	return f
}

func decodeImages(d *jx.Decoder, p *Product) error {
	images := []ProductImage{}
	if err := d.Arr(func(d *jx.Decoder) error {
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		img, err := NormalizeImage(raw)
		if err != nil {
			return err
		}
		images = append(images, img)
		return nil
	}); err != nil {
		return err
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].SortOrder < images[j].SortOrder
	})
	p.Images = images
	return nil
}

// NormalizeCategory converts a loosely-shaped category record. Missing fields
// are left at their zero value.
func NormalizeCategory(data []byte) (Category, error) {
	rec, err := parseRecord(data)
	if err != nil {
		return Category{}, errors.Wrap(err, "normalize category")
	}
	c, err := apply(rec, categoryFields)
	if err != nil {
		return Category{}, errors.Wrap(err, "normalize category")
	}
	return c, nil
}

// NormalizeImage converts a loosely-shaped product image record.
// A missing sort order becomes 0.
func NormalizeImage(data []byte) (ProductImage, error) {
	rec, err := parseRecord(data)
	if err != nil {
		return ProductImage{}, errors.Wrap(err, "normalize image")
	}
	img, err := apply(rec, imageFields)
	if err != nil {
		return ProductImage{}, errors.Wrap(err, "normalize image")
	}
	return img, nil
}

// NormalizeProduct converts a loosely-shaped product record. Missing
// description, isActive and images become nil, true and an empty slice.
func NormalizeProduct(data []byte) (Product, error) {
	rec, err := parseRecord(data)
	if err != nil {
		return Product{}, errors.Wrap(err, "normalize product")
	}
	p, err := apply(rec, productFields)
	if err != nil {
		return Product{}, errors.Wrap(err, "normalize product")
	}
	return p, nil
}

// normalizeAll applies fn to every element, preserving order.
func normalizeAll[T any](items []json.RawMessage, fn func([]byte) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := fn(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}
