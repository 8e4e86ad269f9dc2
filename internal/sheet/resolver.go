// Package sheet reads loosely keyed spreadsheet rows. Column names arrive with
// unknown casing, spacing and punctuation, so every lookup goes through
// Normalize and a fixed alias table.
package sheet

import (
	"sort"
	"strings"
)

// Row is one decoded spreadsheet line keyed by its raw column header.
type Row map[string]any

var stripper = strings.NewReplacer("-", "", "_", "", ".", "", "(", "", ")", "")

// Normalize lower-cases s and removes whitespace, '-', '_', '.', '(' and ')'.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), "")
	return stripper.Replace(s)
}

// aliases maps a canonical field name to the alternate spellings accepted for it.
var aliases = map[string][]string{
	"make":           {"brand", "manufacturer", "mfr"},
	"modelNumber":    {"model", "modelno", "modelnumber", "sku", "partnumber"},
	"productName":    {"name", "description", "title", "product"},
	"salePrice":      {"price", "mrp", "cost", "sellingprice", "rate"},
	"frontPanel":     {"frontpanel(bazel)", "frontpanelbazel", "bazel", "frontpanel"},
	"panel":          {"panel"},
	"screenNonTouch": {"screennontouch", "screen-nontouch", "screen-non-touch", "displaynontouch", "screen"},
	"screenTouch":    {"screentouch", "screen-touch", "displaytouch"},
	"hinge":          {"hinge"},
	"touchPad":       {"touchpad", "touch pad"},
	"base":           {"base"},
	"keyboard":       {"keyboard"},
	"battery":        {"battery", "batt"},
	"ram":            {"ram", "memory", "ramcapacity", "ram capacity"},
	"hdd":            {"hdd", "harddrive", "hard drive"},
	"ssd":            {"ssd", "solidstatedrive", "solid state drive"},
	"tagNo":          {"tag no", "tag", "tagno"},
	"lotNumber":      {"lot number", "lot no", "lotnumber"},
}

// normalizedAliases is aliases re-keyed and re-valued through Normalize.
var normalizedAliases = func() map[string][]string {
	out := make(map[string][]string, len(aliases))
	for field, alts := range aliases {
		key := Normalize(field)
		for _, a := range alts {
			out[key] = append(out[key], Normalize(a))
		}
	}
	return out
}()

// Find returns the value of the column matching the earliest of targets.
// Direct matches on any target win over alias matches. Columns are visited in
// sorted order so duplicate spellings resolve the same way on every call.
func (r Row) Find(targets ...string) (any, bool) {
	if len(r) == 0 || len(targets) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	normKeys := make([]string, len(keys))
	for i, k := range keys {
		normKeys[i] = Normalize(k)
	}

	normTargets := make([]string, len(targets))
	for i, t := range targets {
		normTargets[i] = Normalize(t)
	}

	for _, t := range normTargets {
		for i, k := range normKeys {
			if k == t {
				return r[keys[i]], true
			}
		}
	}

	for _, t := range normTargets {
		alts, ok := normalizedAliases[t]
		if !ok {
			continue
		}
		for i, k := range normKeys {
			for _, a := range alts {
				if k == a {
					return r[keys[i]], true
				}
			}
		}
	}

	return nil, false
}

// String resolves targets and renders the value as trimmed text. Missing
// columns and empty cells both yield "".
func (r Row) String(targets ...string) string {
	v, ok := r.Find(targets...)
	if !ok {
		return ""
	}
	return Stringify(v)
}

// StringPtr is String with "" mapped to nil.
func (r Row) StringPtr(targets ...string) *string {
	s := r.String(targets...)
	if s == "" {
		return nil
	}
	return &s
}
