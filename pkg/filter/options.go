package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yahsan2/linear-pm/pkg/config"
	"github.com/yahsan2/linear-pm/pkg/utils"
)

// Issue state shortcuts
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

var closedStateTypes = []string{"completed", "canceled"}

// IssueFilters contains common filtering options compatible with gh issue list
type IssueFilters struct {
	Team     string   `json:"team,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Assignee string   `json:"assignee,omitempty"`
	Author   string   `json:"author,omitempty"`
	State    string   `json:"state,omitempty"`
	Project  string   `json:"project,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Search   string   `json:"search,omitempty"`
	Updated  string   `json:"updated,omitempty"`
	Created  string   `json:"created,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// NewIssueFilters creates a new IssueFilters with default values
func NewIssueFilters() *IssueFilters {
	return &IssueFilters{
		State: StateOpen,
		Limit: 100,
	}
}

// Build converts the filters into a Linear IssueFilter document. Priority
// names resolve through cfg; relative dates resolve against now.
func (f *IssueFilters) Build(cfg *config.Config, now time.Time) (map[string]interface{}, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	doc := map[string]interface{}{}
	var and []interface{}

	if f.Team != "" {
		doc["team"] = teamFilter(cfg, f.Team)
	}

	switch state := strings.TrimSpace(f.State); strings.ToLower(state) {
	case "", StateAll:
	case StateOpen:
		doc["state"] = map[string]interface{}{"type": map[string]interface{}{"nin": closedStateTypes}}
	case StateClosed:
		doc["state"] = map[string]interface{}{"type": map[string]interface{}{"in": closedStateTypes}}
	default:
		doc["state"] = map[string]interface{}{"name": map[string]interface{}{"eqIgnoreCase": state}}
	}

	if f.Assignee != "" {
		doc["assignee"] = userFilter(f.Assignee)
	}
	if f.Author != "" {
		doc["creator"] = userFilter(f.Author)
	}

	for _, label := range f.Labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		and = append(and, map[string]interface{}{
			"labels": map[string]interface{}{
				"some": map[string]interface{}{"name": map[string]interface{}{"eqIgnoreCase": label}},
			},
		})
	}

	if f.Project != "" {
		doc["project"] = idOrName(f.Project)
	}

	if f.Priority != "" {
		priority, err := cfg.ResolvePriority(f.Priority)
		if err != nil {
			return nil, err
		}
		doc["priority"] = map[string]interface{}{"eq": priority}
	}

	text := f.Search
	if text != "" {
		rest, dates, err := utils.ExtractDateFilters(text, now)
		if err != nil {
			return nil, fmt.Errorf("invalid search query: %w", err)
		}
		text = rest
		for field, cmp := range dates {
			mergeComparator(doc, field, cmp.(map[string]interface{}))
		}
	}

	for field, expr := range map[string]string{"updatedAt": f.Updated, "createdAt": f.Created} {
		if expr == "" {
			continue
		}
		cmp, err := utils.ParseDateExpressionWithBase(expr, now)
		if err != nil {
			return nil, fmt.Errorf("invalid %s expression: %w", field, err)
		}
		mergeComparator(doc, field, cmp.Filter())
	}

	if text != "" {
		doc["or"] = []interface{}{
			map[string]interface{}{"title": map[string]interface{}{"containsIgnoreCase": text}},
			map[string]interface{}{"description": map[string]interface{}{"containsIgnoreCase": text}},
		}
	}

	if len(and) > 0 {
		doc["and"] = and
	}

	return doc, nil
}

func teamFilter(cfg *config.Config, ref string) map[string]interface{} {
	if team := cfg.TeamByKey(ref); team != nil {
		return map[string]interface{}{"id": map[string]interface{}{"eq": team.ID}}
	}
	if isID(ref) {
		return map[string]interface{}{"id": map[string]interface{}{"eq": ref}}
	}
	return map[string]interface{}{"key": map[string]interface{}{"eq": strings.ToUpper(ref)}}
}

func userFilter(ref string) map[string]interface{} {
	switch {
	case ref == "@me" || strings.EqualFold(ref, "me"):
		return map[string]interface{}{"isMe": map[string]interface{}{"eq": true}}
	case strings.EqualFold(ref, "none"):
		return map[string]interface{}{"null": true}
	case strings.Contains(ref, "@"):
		return map[string]interface{}{"email": map[string]interface{}{"eq": ref}}
	case isID(ref):
		return map[string]interface{}{"id": map[string]interface{}{"eq": ref}}
	default:
		return map[string]interface{}{"displayName": map[string]interface{}{"eqIgnoreCase": ref}}
	}
}

func idOrName(ref string) map[string]interface{} {
	if isID(ref) {
		return map[string]interface{}{"id": map[string]interface{}{"eq": ref}}
	}
	return map[string]interface{}{"name": map[string]interface{}{"eqIgnoreCase": ref}}
}

func mergeComparator(doc map[string]interface{}, field string, cmp map[string]interface{}) {
	existing, _ := doc[field].(map[string]interface{})
	if existing == nil {
		existing = map[string]interface{}{}
	}
	for k, v := range cmp {
		existing[k] = v
	}
	doc[field] = existing
}

func isID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
