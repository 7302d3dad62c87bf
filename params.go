package trawl

import (
	"fmt"
	"sort"
)

// Reserved JobParameters keys. These carry platform-facing submission
// metadata and are stripped before deriving spider-facing arguments.
const (
	KeySpider      = "spider"
	KeyUnits       = "units"
	KeyTags        = "tags"
	KeyJobSettings = "job_settings"
	KeyProjectID   = "project_id"
)

var reservedKeys = map[string]struct{}{
	KeySpider:      {},
	KeyUnits:       {},
	KeyTags:        {},
	KeyJobSettings: {},
	KeyProjectID:   {},
}

// JobParameters is the parameter mapping for one spider job: spider
// arguments plus the reserved platform fields above. Treat a JobParameters
// value as immutable once handed to the manager; use Clone and the With*
// helpers instead of mutating in place.
type JobParameters map[string]any

// Clone returns a copy of p. The tags slice and job_settings map are
// copied as well so the clone can be modified independently.
func (p JobParameters) Clone() JobParameters {
	out := make(JobParameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	if tags, ok := p[KeyTags]; ok {
		out[KeyTags] = append([]string(nil), asStringSlice(tags)...)
	}
	if settings, ok := p[KeyJobSettings]; ok {
		out[KeyJobSettings] = asStringMap(settings)
	}
	return out
}

// Spider returns the spider name carried in p, if any.
func (p JobParameters) Spider() string {
	s, _ := p[KeySpider].(string)
	return s
}

// WithSpider returns a copy of p with the spider name set.
func (p JobParameters) WithSpider(spider string) JobParameters {
	out := p.Clone()
	out[KeySpider] = spider
	return out
}

// Tags returns the tag list carried in p. The returned slice is shared
// with p; callers must not modify it.
func (p JobParameters) Tags() []string {
	return asStringSlice(p[KeyTags])
}

// WithTags returns a copy of p with the tag list replaced.
func (p JobParameters) WithTags(tags []string) JobParameters {
	out := p.Clone()
	out[KeyTags] = append([]string(nil), tags...)
	return out
}

// Units returns the resource unit count carried in p, if any.
func (p JobParameters) Units() (int, bool) {
	switch v := p[KeyUnits].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Settings returns the job-settings override carried in p, if any.
func (p JobParameters) Settings() map[string]string {
	return asStringMap(p[KeyJobSettings])
}

// SpiderArgs derives the spider-facing arguments from p: every reserved
// key is stripped and every remaining value is stringified. Integer 3 and
// string "3" produce the same argument value.
func (p JobParameters) SpiderArgs() map[string]string {
	args := make(map[string]string, len(p))
	for k, v := range p {
		if _, reserved := reservedKeys[k]; reserved {
			continue
		}
		args[k] = Stringify(v)
	}
	return args
}

// Stringify converts an argument value to its canonical string form.
// Strings pass through unchanged; everything else uses the fmt default
// representation, which is deterministic (map keys print sorted).
func Stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// SortedKeys returns p's keys in lexicographic order.
func (p JobParameters) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, Stringify(e))
		}
		return out
	}
	return nil
}

func asStringMap(v any) map[string]string {
	switch t := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = Stringify(val)
		}
		return out
	}
	return nil
}
