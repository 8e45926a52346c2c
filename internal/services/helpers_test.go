package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/ayuhealth/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records sent mail and can be told to fail.
type fakeMailer struct {
	fail bool
	sent []sentMail
}

func (m *fakeMailer) SendHTML(to, subject, body string) error {
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// fakeMessenger records operator alerts.
type fakeMessenger struct {
	fail bool
	sent []string
}

func (m *fakeMessenger) Send(text string) error {
	if m.fail {
		return fmt.Errorf("twilio unavailable")
	}
	m.sent = append(m.sent, text)
	return nil
}
