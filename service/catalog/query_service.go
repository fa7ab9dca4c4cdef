package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	entity "portal.GO/model/entity"
)

// Filter tags understood by the query surface. Anything else starting with
// ':' is silently ignored so a typo never breaks the result list.
const (
	TagFavorites  = ":fav"
	TagPromotions = ":prm"
)

// QueryService ranks a catalog snapshot against a free-text launcher query.
type QueryService struct {
	logoDir string
}

func NewQueryService(logoDir string) *QueryService {
	return &QueryService{logoDir: logoDir}
}

// ParseQuery splits a raw query into the search phrase and its filter tags.
// Tokens starting with ':' are tags; the remaining tokens keep their order.
func ParseQuery(raw string) (phrase string, tags []string) {
	var words []string
	for _, tok := range strings.Fields(raw) {
		if strings.HasPrefix(tok, ":") {
			tags = append(tags, strings.ToLower(tok))
		} else {
			words = append(words, tok)
		}
	}
	return strings.Join(words, " "), tags
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// Query filters and ranks merchants for a raw launcher query. favorites is
// the brand's toggle map; merchants is the current snapshot in catalog
// order. An empty snapshot yields an empty list.
func (s *QueryService) Query(raw string, favorites map[string]bool, merchants []entity.Merchant) []Result {
	ranked := Select(raw, favorites, merchants)

	results := make([]Result, 0, len(ranked))
	for _, m := range ranked {
		results = append(results, Result{
			Title:    m.Name,
			Subtitle: Subtitle(&m, favorites[m.MerchantID]),
			Arg:      m.ClickURL,
			Icon:     s.iconFor(&m),
		})
	}
	return results
}

// Select is the filter-and-rank pipeline behind Query, returning the
// merchants themselves for callers that need more than launcher rows.
func Select(raw string, favorites map[string]bool, merchants []entity.Merchant) []entity.Merchant {
	phrase, tags := ParseQuery(raw)

	filtered := make([]entity.Merchant, 0, len(merchants))
	for _, m := range merchants {
		if hasTag(tags, TagFavorites) && !favorites[m.MerchantID] {
			continue
		}
		if hasTag(tags, TagPromotions) && !m.IsElevated {
			continue
		}
		filtered = append(filtered, m)
	}

	var ranked []entity.Merchant
	if hasTag(tags, TagPromotions) {
		// "best current promotions" is a numeric ranking, not a name search;
		// a phrase still narrows the list, it just doesn't reorder it
		ranked = filtered
		if phrase != "" {
			narrowed := ranked[:0:0]
			for _, m := range ranked {
				if MatchScore(phrase, m.Name) > 0 || MatchScore(phrase, searchKey(&m)) > 0 {
					narrowed = append(narrowed, m)
				}
			}
			ranked = narrowed
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].BonusPercentage != ranked[j].BonusPercentage {
				return ranked[i].BonusPercentage > ranked[j].BonusPercentage
			}
			return strings.ToLower(ranked[i].Name) < strings.ToLower(ranked[j].Name)
		})
	} else {
		ranked = rank(phrase, filtered)
		ranked = collapseExactMatch(phrase, ranked)
	}
	return ranked
}

// searchKey is the composite fuzzy-match target: name plus categories.
func searchKey(m *entity.Merchant) string {
	cats := m.CategoryNames()
	if len(cats) == 0 {
		return m.Name
	}
	return m.Name + " " + strings.Join(cats, ", ")
}

type scored struct {
	merchant entity.Merchant
	score    int
}

// rank orders merchants by fuzzy match quality against the search phrase.
// An empty phrase matches everything in catalog order.
func rank(phrase string, merchants []entity.Merchant) []entity.Merchant {
	if phrase == "" {
		return merchants
	}
	hits := make([]scored, 0, len(merchants))
	for _, m := range merchants {
		// categories widen the match surface but must not dilute a name hit
		sc := MatchScore(phrase, m.Name)
		if keySc := MatchScore(phrase, searchKey(&m)); keySc > sc {
			sc = keySc
		}
		if sc > 0 {
			hits = append(hits, scored{merchant: m, score: sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return strings.ToLower(hits[i].merchant.Name) < strings.ToLower(hits[j].merchant.Name)
	})
	out := make([]entity.Merchant, len(hits))
	for i, h := range hits {
		out[i] = h.merchant
	}
	return out
}

// MatchScore rates how well a query phrase matches a search key, 0-100.
// Several strategies are tried and the best one wins: exact, prefix,
// word initials, substring, then a scattered subsequence as the weakest.
func MatchScore(phrase, key string) int {
	p := strings.ToLower(strings.TrimSpace(phrase))
	k := strings.ToLower(key)
	if p == "" || k == "" {
		return 0
	}

	if p == k {
		return 100
	}
	if strings.HasPrefix(k, p) {
		// longer prefixes are better matches
		return 88 + int(12*float64(len(p))/float64(len(k)))
	}

	initials := wordInitials(k)
	if initials != "" {
		if strings.HasPrefix(initials, p) {
			return 90
		}
		if strings.Contains(initials, p) {
			return 84
		}
	}

	if idx := strings.Index(k, p); idx >= 0 {
		if idx > 0 && k[idx-1] == ' ' {
			// match starting at a word boundary beats a mid-word one
			return 80
		}
		return 72
	}

	return subsequenceScore(p, k)
}

// wordInitials returns the first letter of each word in the key.
func wordInitials(k string) string {
	var b strings.Builder
	for _, w := range strings.Fields(k) {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// subsequenceScore checks whether the phrase appears in the key as an
// ordered subsequence and scores it by how tightly packed the match is.
func subsequenceScore(p, k string) int {
	first, last := -1, -1
	j := 0
	for i := 0; i < len(k) && j < len(p); i++ {
		if k[i] == p[j] {
			if first < 0 {
				first = i
			}
			last = i
			j++
		}
	}
	if j < len(p) {
		return 0
	}
	span := last - first + 1
	density := float64(len(p)) / float64(span)
	return 20 + int(40*density)
}

// collapseExactMatch drops everything after the top hit when the user typed
// a full merchant name: near-matches are noise at that point.
func collapseExactMatch(phrase string, ranked []entity.Merchant) []entity.Merchant {
	if phrase == "" || len(ranked) == 0 {
		return ranked
	}
	if strings.EqualFold(ranked[0].Name, phrase) {
		return ranked[:1]
	}
	return ranked
}

const subtitleSpacer = "   "

// Subtitle renders the reward line for one merchant. Pure; independent of
// ranking order.
func Subtitle(m *entity.Merchant, isFavorite bool) string {
	result := "earn " + m.RebateValue + " " + m.RebateCurrency
	if m.IsElevated {
		result = "🏆 " + result + fmt.Sprintf(" (+%.0f%% bonus)", m.BonusPercentage)
		result += subtitleSpacer + "↓ regularly " + m.OriginalValue + " " + m.OriginalCurrency
	}
	if isFavorite {
		result = "❤️ " + result
	}

	if cats := m.CategoryNames(); len(cats) > 0 {
		result += subtitleSpacer + "⦿ " + strings.Join(cats, ", ")
	}
	if m.IsDirect {
		result += subtitleSpacer + "⚡ direct"
	}
	if m.TracksMobile {
		result += subtitleSpacer + "📱 mobile"
	}
	return result
}

// iconFor returns the downloaded logo path when one exists; empty means the
// display layer falls back to its default web icon.
func (s *QueryService) iconFor(m *entity.Merchant) string {
	if s.logoDir == "" {
		return ""
	}
	path := filepath.Join(s.logoDir, m.MerchantID+".png")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
