package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/almostburnout/abo/internal/api"
	"github.com/almostburnout/abo/internal/services"
)

// SQLiteStore persists the full application state in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(conn *sql.DB) (*SQLiteStore, error) {
	if conn == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := conn.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: conn}, nil
}

func NewStore(conn *sql.DB) (api.Store, error) {
	return NewSQLiteStore(conn)
}

var _ api.Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		log.Printf("sqlite store: %s: %v", prefix, err)
	}
}

func toNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func encodeJSON(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("sqlite store: encode json: %v", err)
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func decodeDemographics(ns sql.NullString) *services.Demographics {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out services.Demographics
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		log.Printf("sqlite store: decode demographics: %v", err)
		return nil
	}
	return &out
}

// -- users --

func (s *SQLiteStore) AddUser(u *api.User) {
	_, err := s.db.Exec(`INSERT INTO users (id, email, pass_hash, name, gender, birth_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.PassHash, u.Name,
		toNullString(u.Gender), toNullString(u.BirthDate), u.CreatedAt)
	s.logErr("add user", err)
}

func (s *SQLiteStore) scanUser(row *sql.Row) *api.User {
	var u api.User
	var gender, birthDate sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.Name, &gender, &birthDate, &u.CreatedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("scan user", err)
		}
		return nil
	}
	u.Gender = gender.String
	u.BirthDate = birthDate.String
	return &u
}

func (s *SQLiteStore) FindUserByEmail(email string) *api.User {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, name, gender, birth_date, created_at
		FROM users WHERE email = ?`, strings.ToLower(email))
	return s.scanUser(row)
}

func (s *SQLiteStore) GetUser(id string) *api.User {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, name, gender, birth_date, created_at
		FROM users WHERE id = ?`, id)
	return s.scanUser(row)
}

// -- assessment results --

func (s *SQLiteStore) AddResult(r *api.AssessmentRecord) {
	_, err := s.db.Exec(`INSERT INTO assessment_results
		(id, user_id, session_id, score_em, score_pe, score_ph, score_or, score_im,
		 abo_index, level, taken_at, demographics, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, toNullString(r.UserID), toNullString(r.SessionID),
		r.CategoryScores.Em, r.CategoryScores.Pe, r.CategoryScores.Ph,
		r.CategoryScores.Or, r.CategoryScores.Im,
		r.ABOIndex, r.Level, r.Timestamp, encodeJSON(r.Demographics), r.CreatedAt)
	s.logErr("add result", err)
}

const resultColumns = `id, user_id, session_id, score_em, score_pe, score_ph, score_or, score_im,
	abo_index, level, taken_at, demographics, created_at`

func scanResult(scan func(dest ...any) error) (*api.AssessmentRecord, error) {
	var r api.AssessmentRecord
	var userID, sessionID, demographics sql.NullString
	err := scan(&r.ID, &userID, &sessionID,
		&r.CategoryScores.Em, &r.CategoryScores.Pe, &r.CategoryScores.Ph,
		&r.CategoryScores.Or, &r.CategoryScores.Im,
		&r.ABOIndex, &r.Level, &r.Timestamp, &demographics, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.UserID = userID.String
	r.SessionID = sessionID.String
	r.Demographics = decodeDemographics(demographics)
	return &r, nil
}

func (s *SQLiteStore) GetResult(id string) *api.AssessmentRecord {
	row := s.db.QueryRow(`SELECT `+resultColumns+` FROM assessment_results WHERE id = ?`, id)
	r, err := scanResult(row.Scan)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get result", err)
		}
		return nil
	}
	return r
}

func (s *SQLiteStore) ListResultsByUser(userID string) []*api.AssessmentRecord {
	rows, err := s.db.Query(`SELECT `+resultColumns+` FROM assessment_results
		WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		s.logErr("list results", err)
		return nil
	}
	defer rows.Close()
	out := []*api.AssessmentRecord{}
	for rows.Next() {
		r, err := scanResult(rows.Scan)
		if err != nil {
			s.logErr("scan result", err)
			continue
		}
		out = append(out, r)
	}
	s.logErr("list results rows", rows.Err())
	return out
}

func (s *SQLiteStore) ReassignSessionResults(sessionID, userID string) int {
	res, err := s.db.Exec(`UPDATE assessment_results SET user_id = ?, session_id = NULL
		WHERE user_id IS NULL AND session_id = ?`, userID, sessionID)
	if err != nil {
		s.logErr("reassign results", err)
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.logErr("reassign results affected", err)
		return 0
	}
	return int(n)
}

// -- orders and payments --

func (s *SQLiteStore) AddOrder(o *api.Order) {
	_, err := s.db.Exec(`INSERT INTO orders
		(id, order_ref, user_id, program_type, amount, currency, status,
		 customer_name, customer_email, customer_phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.OrderRef, toNullString(o.UserID), o.ProgramType, o.Amount, o.Currency, o.Status,
		o.CustomerName, o.CustomerEmail, toNullString(o.CustomerPhone), o.CreatedAt)
	s.logErr("add order", err)
}

func (s *SQLiteStore) GetOrderByRef(orderRef string) *api.Order {
	row := s.db.QueryRow(`SELECT id, order_ref, user_id, program_type, amount, currency, status,
		customer_name, customer_email, customer_phone, created_at
		FROM orders WHERE order_ref = ?`, orderRef)
	var o api.Order
	var userID, phone sql.NullString
	err := row.Scan(&o.ID, &o.OrderRef, &userID, &o.ProgramType, &o.Amount, &o.Currency, &o.Status,
		&o.CustomerName, &o.CustomerEmail, &phone, &o.CreatedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get order", err)
		}
		return nil
	}
	o.UserID = userID.String
	o.CustomerPhone = phone.String
	return &o
}

func (s *SQLiteStore) UpdateOrderStatus(orderID, status string) bool {
	res, err := s.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
	if err != nil {
		s.logErr("update order status", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) AddPayment(p *api.Payment) {
	_, err := s.db.Exec(`INSERT INTO payments
		(id, order_id, payment_key, gateway_order_id, amount, method, status,
		 failure_code, failure_message, approved_at, receipt_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OrderID, p.PaymentKey, p.GatewayOrderID, p.Amount,
		toNullString(p.Method), p.Status, toNullString(p.FailureCode), toNullString(p.FailureMessage),
		toNullTime(p.ApprovedAt), toNullString(p.ReceiptURL), p.CreatedAt)
	s.logErr("add payment", err)
}

func (s *SQLiteStore) ListPaymentsByOrder(orderID string) []*api.Payment {
	rows, err := s.db.Query(`SELECT id, order_id, payment_key, gateway_order_id, amount, method, status,
		failure_code, failure_message, approved_at, receipt_url, created_at
		FROM payments WHERE order_id = ? ORDER BY created_at`, orderID)
	if err != nil {
		s.logErr("list payments", err)
		return nil
	}
	defer rows.Close()
	out := []*api.Payment{}
	for rows.Next() {
		var p api.Payment
		var method, failCode, failMsg, receipt sql.NullString
		var approvedAt sql.NullTime
		err := rows.Scan(&p.ID, &p.OrderID, &p.PaymentKey, &p.GatewayOrderID, &p.Amount,
			&method, &p.Status, &failCode, &failMsg, &approvedAt, &receipt, &p.CreatedAt)
		if err != nil {
			s.logErr("scan payment", err)
			continue
		}
		p.Method = method.String
		p.FailureCode = failCode.String
		p.FailureMessage = failMsg.String
		p.ApprovedAt = approvedAt.Time
		p.ReceiptURL = receipt.String
		out = append(out, &p)
	}
	s.logErr("list payments rows", rows.Err())
	return out
}

// -- shared results --

func (s *SQLiteStore) AddShare(sh *api.ResultShare) {
	_, err := s.db.Exec(`INSERT INTO result_shares
		(id, score_em, score_pe, score_ph, score_or, score_im,
		 abo_index, level, taken_at, demographics, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.CategoryScores.Em, sh.CategoryScores.Pe, sh.CategoryScores.Ph,
		sh.CategoryScores.Or, sh.CategoryScores.Im,
		sh.ABOIndex, sh.Level, sh.Timestamp, encodeJSON(sh.Demographics), sh.CreatedAt)
	s.logErr("add share", err)
}

func (s *SQLiteStore) GetShare(id string) *api.ResultShare {
	row := s.db.QueryRow(`SELECT id, score_em, score_pe, score_ph, score_or, score_im,
		abo_index, level, taken_at, demographics, created_at
		FROM result_shares WHERE id = ?`, id)
	var sh api.ResultShare
	var demographics sql.NullString
	err := row.Scan(&sh.ID, &sh.CategoryScores.Em, &sh.CategoryScores.Pe, &sh.CategoryScores.Ph,
		&sh.CategoryScores.Or, &sh.CategoryScores.Im,
		&sh.ABOIndex, &sh.Level, &sh.Timestamp, &demographics, &sh.CreatedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get share", err)
		}
		return nil
	}
	sh.Demographics = decodeDemographics(demographics)
	return &sh
}

// -- program applications --

func (s *SQLiteStore) AddApplication(a *api.ProgramApplication) {
	_, err := s.db.Exec(`INSERT INTO program_applications
		(id, user_id, session_id, program_id, program_title, app_type, status,
		 applicant_info, program_details, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, toNullString(a.UserID), toNullString(a.SessionID),
		a.ProgramID, a.ProgramTitle, a.Type, a.Status,
		encodeJSON(a.ApplicantInfo), encodeJSON(a.Details), a.CreatedAt, a.UpdatedAt)
	s.logErr("add application", err)
}

const applicationColumns = `id, user_id, session_id, program_id, program_title, app_type, status,
	applicant_info, program_details, created_at, updated_at`

func (s *SQLiteStore) scanApplication(scan func(dest ...any) error) (*api.ProgramApplication, error) {
	var a api.ProgramApplication
	var userID, sessionID, applicant, details sql.NullString
	err := scan(&a.ID, &userID, &sessionID, &a.ProgramID, &a.ProgramTitle, &a.Type, &a.Status,
		&applicant, &details, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.UserID = userID.String
	a.SessionID = sessionID.String
	if applicant.Valid {
		if err := json.Unmarshal([]byte(applicant.String), &a.ApplicantInfo); err != nil {
			s.logErr("decode applicant info", err)
		}
	}
	if details.Valid {
		if err := json.Unmarshal([]byte(details.String), &a.Details); err != nil {
			s.logErr("decode program details", err)
		}
	}
	return &a, nil
}

func (s *SQLiteStore) GetApplication(id string) *api.ProgramApplication {
	row := s.db.QueryRow(`SELECT `+applicationColumns+` FROM program_applications WHERE id = ?`, id)
	a, err := s.scanApplication(row.Scan)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get application", err)
		}
		return nil
	}
	return a
}

func (s *SQLiteStore) ListApplicationsByUser(userID string) []*api.ProgramApplication {
	rows, err := s.db.Query(`SELECT `+applicationColumns+` FROM program_applications
		WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		s.logErr("list applications", err)
		return nil
	}
	defer rows.Close()
	out := []*api.ProgramApplication{}
	for rows.Next() {
		a, err := s.scanApplication(rows.Scan)
		if err != nil {
			s.logErr("scan application", err)
			continue
		}
		out = append(out, a)
	}
	s.logErr("list applications rows", rows.Err())
	return out
}

func (s *SQLiteStore) UpdateApplicationStatus(id, status string, updatedAt time.Time) bool {
	res, err := s.db.Exec(`UPDATE program_applications SET status = ?, updated_at = ?
		WHERE id = ?`, status, updatedAt, id)
	if err != nil {
		s.logErr("update application status", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}
