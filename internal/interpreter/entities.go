package interpreter

import (
	"regexp"
	"strings"

	"taskchat/internal/fuzzy"
	"taskchat/internal/model"
)

// EntitySet is the subset of the catalog a message refers to. Fields keep
// catalog scan order; RawMessage is the untouched input for handlers that
// need the original casing and quoting.
type EntitySet struct {
	Projects   []model.Project
	Columns    []model.Column
	Labels     []model.Label
	Tasks      []model.Task
	Priorities []model.Priority
	RawMessage string
}

// The two surface forms a priority can take: "high priority" and
// "priority high". Only the first hit is recorded.
var (
	priorityLead  = regexp.MustCompile(`\b(high|medium|low)\s*priority\b`)
	priorityTrail = regexp.MustCompile(`\bpriority\s*(high|medium|low)\b`)
)

// Extract scans the message against the catalog and returns every entity
// it mentions. Matching is containment over normalized names: tolerant of
// case, punctuation, and surrounding words, but a task titled with a very
// common short word will match more messages than intended.
func Extract(message string, cat *Catalog) EntitySet {
	normalized := fuzzy.Normalize(message)
	ents := EntitySet{RawMessage: message}

	if m := priorityLead.FindStringSubmatch(normalized); m != nil {
		ents.Priorities = append(ents.Priorities, model.Priority(m[1]))
	} else if m := priorityTrail.FindStringSubmatch(normalized); m != nil {
		ents.Priorities = append(ents.Priorities, model.Priority(m[1]))
	}

	for _, p := range cat.Projects {
		if strings.Contains(normalized, fuzzy.Normalize(p.Name)) {
			ents.Projects = append(ents.Projects, p)
		}
	}

	// Project context constrains column resolution, not the reverse.
	for _, c := range cat.Columns {
		if !strings.Contains(normalized, fuzzy.Normalize(c.Name)) {
			continue
		}
		if len(ents.Projects) > 0 {
			for _, p := range ents.Projects {
				if p.ID == c.ProjectID {
					ents.Columns = append(ents.Columns, c)
					break
				}
			}
		} else {
			ents.Columns = append(ents.Columns, c)
		}
	}

	for _, l := range cat.Labels {
		if strings.Contains(normalized, fuzzy.Normalize(l.Name)) {
			ents.Labels = append(ents.Labels, l)
		}
	}

	// Full-title containment, not fuzzy. Short titles over-match; the
	// handlers rely on this permissive behavior.
	for _, t := range cat.Tasks {
		if strings.Contains(normalized, fuzzy.Normalize(t.Title)) {
			ents.Tasks = append(ents.Tasks, t)
		}
	}

	return ents
}
