package repository

import (
	"strings"
	"time"

	"github.com/taskforge/taskmanager/internal/domain"
)

// likeEscape is the ESCAPE character used in substring predicates. It is
// accepted by postgres, mysql and sqlite without extra quoting.
const likeEscape = "!"

// TaskFilter holds the optional criteria of a task listing. Zero values mean
// "not filtered".
type TaskFilter struct {
	Status   domain.TaskStatus
	Priority domain.TaskPriority
	DueDate  *time.Time
	Search   string
}

// Predicate is one SQL condition with its bound values. Clause only ever
// contains column names and placeholders.
type Predicate struct {
	Clause string
	Args   []interface{}
}

// Predicates returns the conditions for f in the fixed order status,
// priority, due date, search.
func (f TaskFilter) Predicates() []Predicate {
	var preds []Predicate

	if f.Status != "" {
		preds = append(preds, Predicate{Clause: "status = ?", Args: []interface{}{string(f.Status)}})
	}
	if f.Priority != "" {
		preds = append(preds, Predicate{Clause: "priority = ?", Args: []interface{}{string(f.Priority)}})
	}
	if f.DueDate != nil {
		preds = append(preds, Predicate{Clause: "due_date = ?", Args: []interface{}{f.DueDate.UTC()}})
	}
	if f.Search != "" {
		// Both sides are folded by the database so they agree on case rules.
		pattern := "%" + escapeLike(f.Search) + "%"
		like := "LIKE LOWER(?) ESCAPE '" + likeEscape + "'"
		preds = append(preds, Predicate{
			Clause: "(LOWER(title) " + like + " OR LOWER(description) " + like + ")",
			Args:   []interface{}{pattern, pattern},
		})
	}

	return preds
}

// Where joins the predicates with AND. An empty clause means no filtering.
func (f TaskFilter) Where() (string, []interface{}) {
	preds := f.Predicates()
	if len(preds) == 0 {
		return "", nil
	}

	clauses := make([]string, len(preds))
	var args []interface{}
	for i, p := range preds {
		clauses[i] = p.Clause
		args = append(args, p.Args...)
	}
	return strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return r.Replace(s)
}
