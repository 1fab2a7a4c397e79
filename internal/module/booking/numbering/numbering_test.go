package numbering_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"backoffice-service/internal/module/booking/numbering"

	"github.com/stretchr/testify/assert"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"
)

func TestNextFormatsSequenceValue(t *testing.T) {
	dbx, mock, err := sqlxmock.Newx()
	assert.NoError(t, err)
	defer dbx.Close()

	year := time.Now().UTC().Year()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO number_sequences")).
		WithArgs(numbering.PrefixBooking, year).
		WillReturnRows(sqlxmock.NewRows([]string{"last_value"}).AddRow(42))

	svc := numbering.NewService()
	number, err := svc.Next(context.Background(), dbx, numbering.PrefixBooking)

	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^BKG-\d{4}-00042$`), number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextPropagatesError(t *testing.T) {
	dbx, mock, err := sqlxmock.Newx()
	assert.NoError(t, err)
	defer dbx.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO number_sequences")).
		WillReturnError(assert.AnError)

	svc := numbering.NewService()
	_, err = svc.Next(context.Background(), dbx, numbering.PrefixJournal)

	assert.Error(t, err)
}
