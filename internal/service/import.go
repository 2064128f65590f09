package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"leadership-dashboard/internal/export"
	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// PreviewTTL is how long a parsed upload waits for confirmation.
const PreviewTTL = 10 * time.Minute

// ImportRow is one parsed spreadsheet line matched to a user.
type ImportRow struct {
	Line     int                  `json:"line"`
	Email    string               `json:"email"`
	UserID   int64                `json:"user_id"`
	UserName string               `json:"user_name"`
	Date     model.Date           `json:"date"`
	Values   map[model.Metric]int `json:"values"`
}

type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportPreview struct {
	Token            string      `json:"token"`
	Rows             []ImportRow `json:"rows"`
	Errors           []RowError  `json:"errors"`
	UnmatchedEmails  []string    `json:"unmatched_emails"`
	ExpiresInSeconds int         `json:"expires_in_seconds"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Merged   int `json:"merged"`
	Total    int `json:"total"`
}

type cachedPreview struct {
	rows      []ImportRow
	createdAt time.Time
}

// ImportService loads daily metrics from an XLSX upload in two steps:
// Preview parses and matches rows, Confirm writes them.
type ImportService struct {
	db    *gorm.DB
	daily *DailyService
	now   func() time.Time

	mu    sync.Mutex
	cache map[string]*cachedPreview
}

func NewImportService(db *gorm.DB, daily *DailyService) *ImportService {
	return &ImportService{db: db, daily: daily, now: time.Now, cache: map[string]*cachedPreview{}}
}

var importMetricColumns = func() []string {
	cols := make([]string, 0, len(model.AllMetrics)+1)
	for _, m := range model.AllMetrics {
		cols = append(cols, string(m))
	}
	return append(cols, "updated_at")
}()

// headerKey maps a header cell to "email", "date" or a metric name.
func headerKey(cell string) string {
	h := strings.ToLower(strings.TrimSpace(cell))
	switch h {
	case "email", "e-mail", "mail":
		return "email"
	case "date", "datum", "entry_date":
		return "date"
	}
	for _, m := range model.AllMetrics {
		if h == string(m) || h == strings.ToLower(export.MetricLabel(m)) {
			return string(m)
		}
	}
	return ""
}

var importDateLayouts = []string{model.DateLayout, "02.01.2006", "2.1.2006", "01-02-06", "2006/01/02"}

func parseImportDate(s string) (model.Date, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return "", err
		}
		return model.NewDate(t), nil
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.NewDate(t), nil
		}
	}
	return "", fmt.Errorf("unrecognised date %q", s)
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative value %q", s)
	}
	return int(f), nil
}

// Preview parses the first sheet of an XLSX workbook. Row 1 is the header
// and must name an email and a date column; every metric column is
// optional.
func (s *ImportService) Preview(ctx context.Context, r io.Reader) (*ImportPreview, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, invalid("not a readable xlsx file: %v", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, invalid("workbook has no sheets")
	}
	lines, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, invalid("read sheet: %v", err)
	}
	if len(lines) == 0 {
		return nil, invalid("sheet is empty")
	}

	cols := map[string]int{}
	for i, cell := range lines[0] {
		if k := headerKey(cell); k != "" {
			if _, dup := cols[k]; !dup {
				cols[k] = i
			}
		}
	}
	if _, ok := cols["email"]; !ok {
		return nil, invalid("header has no email column")
	}
	if _, ok := cols["date"]; !ok {
		return nil, invalid("header has no date column")
	}

	var users []model.User
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	byEmail := make(map[string]model.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	cell := func(line []string, key string) string {
		i, ok := cols[key]
		if !ok || i >= len(line) {
			return ""
		}
		return line[i]
	}

	p := &ImportPreview{Rows: []ImportRow{}, Errors: []RowError{}, UnmatchedEmails: []string{}}
	unmatched := map[string]bool{}
	seen := map[string]int{}
	for i, line := range lines[1:] {
		lineNo := i + 2
		email := normalizeEmail(cell(line, "email"))
		rawDate := cell(line, "date")
		if email == "" && strings.TrimSpace(rawDate) == "" {
			continue
		}
		u, ok := byEmail[email]
		if !ok {
			if !unmatched[email] {
				unmatched[email] = true
				p.UnmatchedEmails = append(p.UnmatchedEmails, email)
			}
			continue
		}
		date, err := parseImportDate(rawDate)
		if err != nil {
			p.Errors = append(p.Errors, RowError{Line: lineNo, Message: err.Error()})
			continue
		}
		row := ImportRow{Line: lineNo, Email: email, UserID: u.ID, UserName: u.Name, Date: date, Values: map[model.Metric]int{}}
		bad := false
		for _, m := range model.AllMetrics {
			n, err := parseCount(cell(line, string(m)))
			if err != nil {
				p.Errors = append(p.Errors, RowError{Line: lineNo, Message: fmt.Sprintf("%s: %v", m, err)})
				bad = true
				break
			}
			row.Values[m] = n
		}
		if bad {
			continue
		}
		key := fmt.Sprintf("%d:%s", u.ID, date)
		if prev, dup := seen[key]; dup {
			p.Errors = append(p.Errors, RowError{Line: p.Rows[prev].Line, Message: fmt.Sprintf("replaced by line %d", lineNo)})
			p.Rows[prev] = row
			continue
		}
		seen[key] = len(p.Rows)
		p.Rows = append(p.Rows, row)
	}

	p.Token = uuid.NewString()
	p.ExpiresInSeconds = int(PreviewTTL.Seconds())
	s.store(p.Token, p.Rows)
	logger.Info("import.preview", "token", p.Token, "rows", len(p.Rows), "errors", len(p.Errors), "unmatched", len(p.UnmatchedEmails))
	return p, nil
}

func (s *ImportService) store(token string, rows []ImportRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, v := range s.cache {
		if now.Sub(v.createdAt) > PreviewTTL {
			delete(s.cache, k)
		}
	}
	s.cache[token] = &cachedPreview{rows: rows, createdAt: now}
}

func (s *ImportService) take(token string) (*cachedPreview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cache[token]
	if !ok {
		return nil, false
	}
	delete(s.cache, token)
	if s.now().Sub(c.createdAt) > PreviewTTL {
		return nil, false
	}
	return c, true
}

// restore puts rows back after a failed confirm so the same token can be
// retried. The original expiry is not extended.
func (s *ImportService) restore(token string, rows []ImportRow, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[token] = &cachedPreview{rows: rows, createdAt: createdAt}
}

// Confirm writes the rows of a preview. Metric columns of existing entries
// are overwritten; their reflections stay. A token works once.
func (s *ImportService) Confirm(ctx context.Context, token string) (*ImportResult, error) {
	if token == "" {
		return nil, invalid("token is required")
	}
	cached, ok := s.take(token)
	if !ok {
		return nil, invalid("preview expired, upload again")
	}
	rows := cached.rows
	res := &ImportResult{Total: len(rows)}
	var saved []model.DailyEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			var n int64
			if err := tx.Model(&model.DailyEntry{}).Where("user_id = ? AND entry_date = ?", r.UserID, r.Date).Count(&n).Error; err != nil {
				return fmt.Errorf("check entry: %w", err)
			}
			e := model.DailyEntry{UserID: r.UserID, EntryDate: r.Date}
			for m, v := range r.Values {
				e.SetValue(m, v)
			}
			out, err := s.daily.save(ctx, tx, e, importMetricColumns)
			if err != nil {
				return err
			}
			saved = append(saved, *out)
			if n > 0 {
				res.Merged++
			} else {
				res.Imported++
			}
		}
		return nil
	})
	if err != nil {
		s.restore(token, rows, cached.createdAt)
		return nil, err
	}
	s.daily.sync(saved)
	logger.Info("import.confirm", "token", token, "imported", res.Imported, "merged", res.Merged)
	return res, nil
}
