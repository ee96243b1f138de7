// Package metadata holds the per-region short number descriptors and the
// calling-code index. The store is built once from a YAML document (an
// embedded default ships with the binary) and is read-only afterwards; every
// pattern in the document is compiled at load time so malformed metadata
// surfaces as a load error, never at query time.
package metadata

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"shortnum/internal/pattern"
)

// Desc pairs a national-number pattern with the set of digit-count lengths the
// category may legally have in its region. An empty pattern means the category
// is undefined for the region; an empty length set imposes no length
// constraint.
type Desc struct {
	Pattern string `yaml:"pattern"`
	Lengths []int  `yaml:"lengths,flow"`
}

// IsDefined reports whether the category exists for its region. Empty pattern
// text is the undefined sentinel, never a universal matcher.
func (d Desc) IsDefined() bool { return d.Pattern != "" }

// AllowsLength reports whether a national number of n digits passes the
// possible-length gate. The gate runs before any pattern matching.
func (d Desc) AllowsLength(n int) bool {
	if len(d.Lengths) == 0 {
		return true
	}
	for _, l := range d.Lengths {
		if l == n {
			return true
		}
	}
	return false
}

// RegionMetadata is one region's descriptor set.
type RegionMetadata struct {
	Region    string `yaml:"-"`
	General   Desc   `yaml:"general"`
	ShortCode Desc   `yaml:"short_code"`
	Emergency Desc   `yaml:"emergency"`
}

// document is the on-disk layout of a metadata file.
type document struct {
	CallingCodes map[int][]string           `yaml:"calling_codes"`
	Regions      map[string]*RegionMetadata `yaml:"regions"`
}

// Store is the immutable metadata set: descriptor resolution by region and the
// calling-code index. Candidate region order is significant, the principal
// region for a shared calling code is listed first.
type Store struct {
	regions       map[string]*RegionMetadata
	byCallingCode map[int][]string
}

// Load parses and validates a metadata document. Every pattern is compiled
// through the supplied cache so the compiled forms are already resident when
// queries begin.
func Load(doc []byte, cache *pattern.Cache, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var parsed document
	if err := yaml.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parsing short number metadata: %w", err)
	}

	for code, regions := range parsed.CallingCodes {
		if code <= 0 {
			return nil, fmt.Errorf("calling code %d: must be positive", code)
		}
		if len(regions) == 0 {
			return nil, fmt.Errorf("calling code %d: empty region list", code)
		}
	}

	for region, meta := range parsed.Regions {
		if meta == nil {
			return nil, fmt.Errorf("region %s: empty metadata block", region)
		}
		meta.Region = region
		for _, d := range []struct {
			category string
			desc     Desc
		}{
			{"general", meta.General},
			{"short_code", meta.ShortCode},
			{"emergency", meta.Emergency},
		} {
			if !d.desc.IsDefined() {
				continue
			}
			if _, err := cache.Compile(d.desc.Pattern); err != nil {
				return nil, fmt.Errorf("region %s: %s descriptor: %w", region, d.category, err)
			}
			for _, l := range d.desc.Lengths {
				if l <= 0 {
					return nil, fmt.Errorf("region %s: %s descriptor: invalid length %d", region, d.category, l)
				}
			}
		}
	}

	logger.Debug("short number metadata loaded",
		zap.Int("calling_codes", len(parsed.CallingCodes)),
		zap.Int("regions", len(parsed.Regions)))

	return &Store{
		regions:       parsed.Regions,
		byCallingCode: parsed.CallingCodes,
	}, nil
}

// ForRegion resolves a region's descriptor set. Absence means no short number
// metadata is defined for the region and must be treated as "not possible",
// never as an error.
func (s *Store) ForRegion(region string) (*RegionMetadata, bool) {
	meta, ok := s.regions[region]
	return meta, ok
}

// RegionsForCallingCode returns the ordered candidate regions for a calling
// code, principal region first. Unknown codes yield an empty slice.
func (s *Store) RegionsForCallingCode(code int) []string {
	return s.byCallingCode[code]
}

// Regions returns every region carrying metadata, sorted for stable output.
func (s *Store) Regions() []string {
	out := make([]string, 0, len(s.regions))
	for region := range s.regions {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}
