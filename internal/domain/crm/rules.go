package crm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/erp/crm/internal/domain/shared"
)

// Deal statuses
const (
	DealStatusOpen = "open"
	DealStatusWon  = "won"
	DealStatusLost = "lost"
)

// Task statuses
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusCancelled  = "cancelled"
)

var (
	colorPattern    = regexp.MustCompile(`^#[0-9a-f]{6}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	lettersPattern  = regexp.MustCompile(`^[A-Z]+$`)
)

// now is replaced in tests
var now = time.Now

func invalid(format string, args ...any) error {
	return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf(format, args...))
}

// both wraps fn as the BeforeCreate and BeforeUpdate hook of a set
func both(fn HookFunc, validate HookFunc) Hooks {
	return Hooks{BeforeCreate: fn, BeforeUpdate: fn, Validate: validate}
}

// RegisterBuiltinRules attaches the normalisation and validation rules that
// ship with the catalog. They never touch other records.
func RegisterBuiltinRules(reg *HookRegistry) error {
	rules := []struct {
		entity string
		hooks  Hooks
	}{
		{"Deal", both(For(normalizeDeal), For(validateDeal))},
		{"Task", both(For(normalizeTask), For(validateTask))},
		{"Event", Hooks{Validate: For(func(_ context.Context, e *Event) error {
			return checkRange("ends_at", e.StartsAt, e.EndsAt)
		})}},
		{"EventResourceBooking", Hooks{Validate: For(func(_ context.Context, b *EventResourceBooking) error {
			return checkRange("ends_at", b.StartsAt, b.EndsAt)
		})}},
		{"Campaign", Hooks{Validate: For(func(_ context.Context, c *Campaign) error {
			if c.Budget.IsNegative() {
				return invalid("budget cannot be negative")
			}
			return checkOptionalRange("end_date", c.StartDate, c.EndDate)
		})}},
		{"StepIteration", Hooks{Validate: For(func(_ context.Context, s *StepIteration) error {
			return checkOptionalRange("finished_at", s.StartedAt, s.FinishedAt)
		})}},
		{"Holiday", Hooks{Validate: For(func(_ context.Context, h *Holiday) error {
			return checkOptionalRange("end_date", &h.Date, h.EndDate)
		})}},
		{"WorkingHour", Hooks{Validate: For(validateWorkingHour)}},
		{"PipelineStage", both(For(func(_ context.Context, s *PipelineStage) error {
			s.Color = normalizeColor(s.Color)
			return nil
		}), For(func(_ context.Context, s *PipelineStage) error {
			if s.IsWon && s.IsLost {
				return invalid("stage cannot be both won and lost")
			}
			if err := checkColor(s.Color); err != nil {
				return err
			}
			return checkStagePlacement(s.Position, s.Probability)
		}))},
		{"PipelineStageTemplate", Hooks{Validate: For(func(_ context.Context, s *PipelineStageTemplate) error {
			return checkStagePlacement(s.Position, s.Probability)
		})}},
		{"Country", both(For(normalizeCountry), For(validateCountry))},
		{"Tag", colorRule(func(r Record) *string { return &r.(*Tag).Color })},
		{"Flag", colorRule(func(r Record) *string { return &r.(*Flag).Color })},
		{"Calendar", colorRule(func(r Record) *string { return &r.(*Calendar).Color })},
		{"EventCategory", colorRule(func(r Record) *string { return &r.(*EventCategory).Color })},
		{"Agent", emailRule(func(r Record) *string { return &r.(*Agent).Email })},
		{"Contact", emailRule(func(r Record) *string { return &r.(*Contact).Email })},
		{"Company", emailRule(func(r Record) *string { return &r.(*Company).Email })},
		{"EventAttendee", emailRule(func(r Record) *string { return &r.(*EventAttendee).Email })},
		{"Reminder", Hooks{Validate: For(validateReminder)}},
		{"Product", both(For(func(_ context.Context, p *Product) error {
			p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
			p.CurrencyCode = strings.ToUpper(strings.TrimSpace(p.CurrencyCode))
			return nil
		}), For(func(_ context.Context, p *Product) error {
			if p.Price.IsNegative() {
				return invalid("price cannot be negative")
			}
			return checkCurrency(p.CurrencyCode)
		}))},
		{"ProductBatch", both(For(func(_ context.Context, b *ProductBatch) error {
			b.BatchCode = strings.ToUpper(strings.TrimSpace(b.BatchCode))
			return nil
		}), For(func(_ context.Context, b *ProductBatch) error {
			if b.Quantity < 0 {
				return invalid("quantity cannot be negative")
			}
			if b.UnitCost.IsNegative() {
				return invalid("unit_cost cannot be negative")
			}
			return checkOptionalRange("expires_at", b.ManufacturedAt, b.ExpiresAt)
		}))},
		{"TaskTemplate", Hooks{Validate: For(func(_ context.Context, t *TaskTemplate) error {
			return checkOffset(t.OffsetMinutes)
		})}},
		{"NotificationTypeTemplate", Hooks{Validate: For(func(_ context.Context, t *NotificationTypeTemplate) error {
			return checkOffset(t.OffsetMinutes)
		})}},
	}

	for _, rule := range rules {
		if err := reg.Register(rule.entity, rule.hooks); err != nil {
			return err
		}
	}
	return nil
}

func normalizeDeal(_ context.Context, d *Deal) error {
	d.CurrencyCode = strings.ToUpper(strings.TrimSpace(d.CurrencyCode))
	d.Status = strings.ToLower(strings.TrimSpace(d.Status))
	if d.Status == "" {
		d.Status = DealStatusOpen
	}
	switch d.Status {
	case DealStatusWon, DealStatusLost:
		if d.ClosedAt == nil {
			closed := now()
			d.ClosedAt = &closed
		}
	case DealStatusOpen:
		d.ClosedAt = nil
	}
	return nil
}

func validateDeal(_ context.Context, d *Deal) error {
	if d.Amount.IsNegative() {
		return invalid("amount cannot be negative")
	}
	if d.Probability < 0 || d.Probability > 100 {
		return invalid("probability must be between 0 and 100")
	}
	switch d.Status {
	case DealStatusOpen, DealStatusWon, DealStatusLost:
	default:
		return invalid("unknown deal status %q", d.Status)
	}
	return checkCurrency(d.CurrencyCode)
}

func normalizeTask(_ context.Context, t *Task) error {
	t.Status = strings.ToLower(strings.TrimSpace(t.Status))
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	if t.Status == TaskStatusDone {
		if t.CompletedAt == nil {
			done := now()
			t.CompletedAt = &done
		}
	} else {
		t.CompletedAt = nil
	}
	return nil
}

func validateTask(_ context.Context, t *Task) error {
	switch t.Status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return nil
	default:
		return invalid("unknown task status %q", t.Status)
	}
}

func validateWorkingHour(_ context.Context, w *WorkingHour) error {
	if w.Weekday < 0 || w.Weekday > 6 {
		return invalid("weekday must be between 0 and 6")
	}
	if w.StartMinute < 0 || w.EndMinute > 24*60 {
		return invalid("working hours must fall within the day")
	}
	if w.StartMinute >= w.EndMinute {
		return invalid("start_minute must be before end_minute")
	}
	return nil
}

func normalizeCountry(_ context.Context, c *Country) error {
	c.Iso2Code = strings.ToUpper(strings.TrimSpace(c.Iso2Code))
	c.Iso3Code = strings.ToUpper(strings.TrimSpace(c.Iso3Code))
	c.CurrencyCode = strings.ToUpper(strings.TrimSpace(c.CurrencyCode))
	return nil
}

func validateCountry(_ context.Context, c *Country) error {
	if len(c.Iso2Code) != 2 || !lettersPattern.MatchString(c.Iso2Code) {
		return invalid("iso2_code must be two letters")
	}
	if c.Iso3Code != "" && (len(c.Iso3Code) != 3 || !lettersPattern.MatchString(c.Iso3Code)) {
		return invalid("iso3_code must be three letters")
	}
	return checkCurrency(c.CurrencyCode)
}

func validateReminder(_ context.Context, r *Reminder) error {
	if r.RemindAt == nil {
		return invalid("remind_at is required")
	}
	if r.EventID == nil && r.TaskID == nil && r.DealID == nil {
		return invalid("reminder must reference an event, task or deal")
	}
	return nil
}

func colorRule(field func(Record) *string) Hooks {
	return both(func(_ context.Context, rec Record) error {
		c := field(rec)
		*c = normalizeColor(*c)
		return nil
	}, func(_ context.Context, rec Record) error {
		return checkColor(*field(rec))
	})
}

func emailRule(field func(Record) *string) Hooks {
	normalize := func(_ context.Context, rec Record) error {
		e := field(rec)
		*e = strings.ToLower(strings.TrimSpace(*e))
		return nil
	}
	return Hooks{BeforeCreate: normalize, BeforeUpdate: normalize}
}

func normalizeColor(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

func checkColor(c string) error {
	if c != "" && !colorPattern.MatchString(c) {
		return invalid("color must be a #rrggbb value")
	}
	return nil
}

func checkCurrency(code string) error {
	if code != "" && !currencyPattern.MatchString(code) {
		return invalid("currency_code must be a three letter ISO 4217 code")
	}
	return nil
}

func checkOffset(minutes int) error {
	if minutes < 0 {
		return invalid("offset_minutes cannot be negative")
	}
	return nil
}

func checkStagePlacement(position, probability int) error {
	if position < 0 {
		return invalid("position cannot be negative")
	}
	if probability < 0 || probability > 100 {
		return invalid("probability must be between 0 and 100")
	}
	return nil
}

func checkRange(field string, start, end time.Time) error {
	if end.Before(start) {
		return invalid("%s cannot be before the start", field)
	}
	return nil
}

func checkOptionalRange(field string, start, end *time.Time) error {
	if start == nil || end == nil {
		return nil
	}
	return checkRange(field, *start, *end)
}
