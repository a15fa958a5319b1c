package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"travel_assistant/internal/domain"
)

func valStr(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func valID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}

// valJSON stores nil slices as NULL so the column can tell "unset" from "[]".
func valJSON(v []string) any {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func scanJSON(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	_ = json.Unmarshal(b, &out)
	return out
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertPlan(ctx context.Context, p domain.Plan) error {
	_, err := r.db.ExecContext(ctx, upsertPlanSQL,
		p.ID,
		p.Title,
		p.Category,
		p.PriceLabel,
		p.Price,
		p.DurationDays,
		valStr(p.Description),
		valJSON(p.Images),
		valJSON(p.Includes),
		p.Visible,
		valStr(p.DepartureDate),
		valStr(p.ReturnDate),
		p.Country,
		p.City,
		string(p.Regime),
		valJSON(p.TravelerTypes),
		valJSON(p.Amenities),
	)
	return err
}

func (r *Repo) UpsertFAQ(ctx context.Context, f domain.FAQItem) error {
	_, err := r.db.ExecContext(ctx, upsertFAQSQL, valID(f.ID), f.Question, f.Answer, f.Category)
	return err
}

func (r *Repo) UpsertContact(ctx context.Context, c domain.ContactInfo) error {
	_, err := r.db.ExecContext(ctx, upsertContactSQL,
		c.Phone, valStr(c.Email), valStr(c.Address), valStr(c.WhatsAppMessage))
	return err
}

func (r *Repo) LogMiss(ctx context.Context, resource string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, resource, status, reason)
	return err
}

func (r *Repo) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, listPlansSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Plan{}
	for rows.Next() {
		var (
			p                                  domain.Plan
			desc, departure, ret               sql.NullString
			images, includes, travelers, ameni []byte
			regime                             string
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Category, &p.PriceLabel, &p.Price, &p.DurationDays, &desc,
			&images, &includes, &p.Visible, &departure, &ret,
			&p.Country, &p.City, &regime, &travelers, &ameni,
		); err != nil {
			return nil, err
		}
		p.Description = desc.String
		p.DepartureDate = departure.String
		p.ReturnDate = ret.String
		p.Regime = domain.ParseRegime(regime)
		p.Images = scanJSON(images)
		p.Includes = scanJSON(includes)
		p.TravelerTypes = scanJSON(travelers)
		p.Amenities = scanJSON(ameni)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListFAQs(ctx context.Context) ([]domain.FAQItem, error) {
	rows, err := r.db.QueryContext(ctx, listFAQsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.FAQItem{}
	for rows.Next() {
		var f domain.FAQItem
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetContact(ctx context.Context) (domain.ContactInfo, error) {
	var (
		c                    domain.ContactInfo
		email, addr, message sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getContactSQL).Scan(&c.Phone, &email, &addr, &message)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ContactInfo{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ContactInfo{}, err
	}
	c.Email = email.String
	c.Address = addr.String
	c.WhatsAppMessage = message.String
	return c, nil
}
