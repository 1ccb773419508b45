package export

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/emsdev/ems-service/internal/domain"
)

var icsPriority = map[domain.TaskPriority]string{
	domain.PriorityUrgent: "1",
	domain.PriorityHigh:   "3",
	domain.PriorityMedium: "5",
	domain.PriorityLow:    "9",
}

// TasksICS renders every task with a due date as an all-day event on that date.
// Tasks without a due date are skipped.
func TasksICS(companyName string, tasks []domain.Task, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ems-service//tasks//EN")
	cal.SetXWRCalName(strings.TrimSpace(companyName) + " tasks")

	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := t.DueDate.UTC()
		day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)

		event := cal.AddEvent(t.ID + "@ems-service")
		event.SetDtStampTime(now.UTC())
		event.SetCreatedTime(t.CreatedAt.UTC())
		event.SetModifiedAt(t.UpdatedAt.UTC())
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		summary := t.Title
		if t.Status == domain.TaskCompleted {
			summary += " (completed)"
		}
		event.SetSummary(summary)

		var desc []string
		if t.Description != "" {
			desc = append(desc, t.Description)
		}
		if t.AssigneeName != "" {
			desc = append(desc, "Assignee: "+t.AssigneeName)
		}
		desc = append(desc, "Status: "+string(t.Status))
		event.SetDescription(strings.Join(desc, "\n"))

		if t.DepartmentName != "" {
			event.AddProperty(ics.ComponentPropertyCategories, t.DepartmentName)
		}
		if p, ok := icsPriority[t.Priority]; ok {
			event.AddProperty(ics.ComponentPropertyPriority, p)
		}
		event.AddProperty(ics.ComponentPropertyStatus, "CONFIRMED")
	}
	return cal.Serialize()
}
