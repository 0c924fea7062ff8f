// Package contact stores messages sent through the storefront contact form.
package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/event"
	"github.com/HerbHall/storefront/internal/store"
)

// TopicSubmitted is published after a message is stored.
const TopicSubmitted = "contact.submitted"

// Subjects lists the accepted subject values in form order.
var Subjects = []string{"general", "support", "business", "careers", "feedback"}

// Request is the form payload.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submission is a stored message.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range []string{"name", "email", "subject", "message"} {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "invalid contact request: " + strings.Join(parts, "; ")
}

// Config holds the contact section.
type Config struct {
	SubmitDelay time.Duration `mapstructure:"submit_delay"`
}

// Validate trims req in place and reports every invalid field.
func Validate(req *Request) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "required"
	}
	switch {
	case req.Email == "":
		fields["email"] = "required"
	case !validEmail(req.Email):
		fields["email"] = "must be a valid email address"
	}
	switch {
	case req.Subject == "":
		fields["subject"] = "required"
	case !validSubject(req.Subject):
		fields["subject"] = "must be one of " + strings.Join(Subjects, ", ")
	}
	if req.Message == "" {
		fields["message"] = "required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validEmail accepts a bare address with text on both sides of the @.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1
}

func validSubject(s string) bool {
	for _, v := range Subjects {
		if v == s {
			return true
		}
	}
	return false
}

var migrations = []store.Migration{
	{
		Version:     1,
		Description: "create contact_messages table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE contact_messages (
					id         TEXT     PRIMARY KEY,
					name       TEXT     NOT NULL,
					email      TEXT     NOT NULL,
					subject    TEXT     NOT NULL,
					message    TEXT     NOT NULL,
					created_at DATETIME NOT NULL
				)`)
			if err != nil {
				return err
			}
			_, err = tx.Exec("CREATE INDEX idx_contact_messages_created ON contact_messages(created_at)")
			return err
		},
	},
}

// Service accepts and lists contact messages.
type Service struct {
	db     *sql.DB
	delay  time.Duration
	bus    *event.Bus
	logger *zap.Logger
	now    func() time.Time
}

// NewService migrates the contact table. bus may be nil.
func NewService(ctx context.Context, s *store.SQLiteStore, cfg Config, bus *event.Bus, logger *zap.Logger) (*Service, error) {
	if err := s.Migrate(ctx, "contact", migrations); err != nil {
		return nil, fmt.Errorf("migrate contact: %w", err)
	}
	return &Service{
		db:     s.DB(),
		delay:  cfg.SubmitDelay,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Submit validates req, waits out the configured delay and stores it.
// Cancelling ctx during the delay abandons the submission.
func (s *Service) Submit(ctx context.Context, req Request) (*Submission, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	sub := &Submission{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contact_messages (id, name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		sub.ID, sub.Name, sub.Email, sub.Subject, sub.Message, sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}

	s.logger.Info("contact message received",
		zap.String("id", sub.ID), zap.String("subject", sub.Subject))
	if s.bus != nil {
		_ = s.bus.Publish(ctx, event.Event{Topic: TopicSubmitted, Source: "contact", Payload: *sub})
	}
	return sub, nil
}

// List returns stored messages, newest first.
func (s *Service) List(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, subject, message, created_at FROM contact_messages ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Subject, &sub.Message, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// IsValidation reports whether err came from Validate.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
