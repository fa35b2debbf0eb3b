package interpreter

import (
	"strings"

	"taskchat/internal/fuzzy"
)

// Intent is the single classified operation code for a message.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentPrependTitle
	IntentAppendTitle
	IntentRenameTitle
	IntentAddTag
	IntentRemoveTag
	IntentMarkDone
	IntentMove
	IntentDelete
	IntentCreate
	IntentUpdate
	IntentSearch
	IntentInfo
	IntentHelp
)

var intentNames = map[Intent]string{
	IntentUnknown:      "unknown",
	IntentPrependTitle: "prepend_title",
	IntentAppendTitle:  "append_title",
	IntentRenameTitle:  "rename_title",
	IntentAddTag:       "add_tag",
	IntentRemoveTag:    "remove_tag",
	IntentMarkDone:     "mark_done",
	IntentMove:         "move",
	IntentDelete:       "delete",
	IntentCreate:       "create",
	IntentUpdate:       "update",
	IntentSearch:       "search",
	IntentInfo:         "info",
	IntentHelp:         "help",
}

func (i Intent) String() string { return intentNames[i] }

// intentRule pairs a predicate over the normalized message with the
// intent it selects.
type intentRule struct {
	intent Intent
	match  func(m string) bool
}

func has(m, sub string) bool { return strings.Contains(m, sub) }

// intentRules is evaluated in order; the first match wins. The ordering
// is a compatibility contract: cues overlap heavily ("add" alone appears
// in four different operations), so narrower rules must run first.
// Reordering changes which action a given sentence maps to.
var intentRules = []intentRule{
	{IntentPrependTitle, func(m string) bool {
		return has(m, "before all") || has(m, "prepend") || has(m, "prefix") ||
			has(m, "add before") ||
			(has(m, "before") && has(m, "task") && has(m, "add"))
	}},
	{IntentAppendTitle, func(m string) bool {
		return has(m, "after all") || has(m, "append") || has(m, "suffix") ||
			has(m, "add after") ||
			(has(m, "after") && has(m, "task") && has(m, "add"))
	}},
	{IntentRenameTitle, func(m string) bool {
		return has(m, "rename") ||
			(has(m, "change") && has(m, "title")) ||
			(has(m, "update") && has(m, "title"))
	}},
	// Tag cues outrank CREATE so "add tag Bug" never creates a task.
	{IntentAddTag, func(m string) bool {
		return (has(m, "tag") || has(m, "label")) &&
			!has(m, "remove tag") && !has(m, "remove label") &&
			!has(m, "untag") && !has(m, "detach")
	}},
	{IntentRemoveTag, func(m string) bool {
		return has(m, "remove tag") || has(m, "remove label") ||
			has(m, "untag") || has(m, "detach label")
	}},
	{IntentMarkDone, func(m string) bool {
		return (has(m, "mark") && (has(m, "done") || has(m, "complete"))) ||
			has(m, "finish task")
	}},
	{IntentMove, func(m string) bool {
		return has(m, "move") || has(m, "transfer") || has(m, "relocate")
	}},
	{IntentDelete, func(m string) bool {
		return has(m, "delete") || has(m, "remove task") ||
			has(m, "trash") || has(m, "eliminate")
	}},
	{IntentCreate, func(m string) bool {
		return (has(m, "create") || has(m, "new task") ||
			has(m, "add task") || has(m, "make task")) &&
			!has(m, "tag") && !has(m, "label")
	}},
	{IntentUpdate, func(m string) bool {
		return has(m, "update") || has(m, "change") ||
			has(m, "modify") || has(m, "set priority")
	}},
	{IntentSearch, func(m string) bool {
		return has(m, "show") || has(m, "list") || has(m, "find") ||
			has(m, "search") || has(m, "display") || has(m, "view") ||
			has(m, "what") || has(m, "get")
	}},
	{IntentInfo, func(m string) bool {
		return has(m, "info") || has(m, "summary") || has(m, "stats") ||
			has(m, "statistics") || has(m, "status") || has(m, "how many")
	}},
	{IntentHelp, func(m string) bool {
		return has(m, "help") || has(m, "what can") || has(m, "commands")
	}},
}

// Detect classifies a message into exactly one intent.
func Detect(message string) Intent {
	m := fuzzy.Normalize(message)
	for _, r := range intentRules {
		if r.match(m) {
			return r.intent
		}
	}
	return IntentUnknown
}

// bulkCues mark a request as targeting a set of tasks inferred from
// column or project context rather than one named task.
var bulkCues = []string{"all", "every", "each", "multiple", "batch", "bulk"}

func isBulk(message string) bool {
	m := fuzzy.Normalize(message)
	for _, cue := range bulkCues {
		if strings.Contains(m, cue) {
			return true
		}
	}
	return false
}
