package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookStatus(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    BookStatus
		wantErr bool
	}{
		{name: "available", label: "AVAILABLE", want: BookStatusAvailable},
		{name: "rented", label: "RENTED", want: BookStatusRented},
		{name: "lost", label: "LOST", want: BookStatusLost},
		{name: "unknown label", label: "BORROWED", wantErr: true},
		{name: "lowercase is not accepted", label: "available", wantErr: true},
		{name: "empty", label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookStatus(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidBookStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClassification(t *testing.T) {
	got, err := ParseClassification("SCIENCE")
	require.NoError(t, err)
	assert.Equal(t, ClassificationScience, got)

	_, err = ParseClassification("COOKING")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseInStockSource(t *testing.T) {
	got, err := ParseInStockSource("DONATED")
	require.NoError(t, err)
	assert.Equal(t, InStockSourceDonated, got)

	_, err = ParseInStockSource("FOUND")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookRented(t *testing.T) {
	assert.False(t, Book{BookStatus: BookStatusAvailable}.Rented())
	assert.True(t, Book{BookStatus: BookStatusRented}.Rented())
	assert.True(t, Book{BookStatus: BookStatusLost}.Rented())
}

func TestStockChangedValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   StockChanged
		wantErr error
	}{
		{name: "valid", event: StockChanged{BookID: 42, BookStatus: "RENTED"}},
		{name: "missing book id", event: StockChanged{BookStatus: "RENTED"}, wantErr: ErrValidation},
		{name: "negative book id", event: StockChanged{BookID: -1, BookStatus: "RENTED"}, wantErr: ErrValidation},
		{name: "missing status", event: StockChanged{BookID: 42}, wantErr: ErrValidation},
		{name: "unknown status", event: StockChanged{BookID: 42, BookStatus: "ON_FIRE"}, wantErr: ErrInvalidBookStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
