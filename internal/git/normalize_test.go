package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer(now time.Time) *Normalizer {
	n := NewNormalizer(nil)
	n.Now = func() time.Time { return now }
	return n
}

func TestNormalizeRepairsUnparseableDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	records := []RawLogRecord{{
		Hash:       "abc1234",
		Author:     "Alice",
		Date:       "not-a-date",
		Message:    "fix: something",
		FieldCount: numLogFields,
	}}

	commits := testNormalizer(now).Normalize(records)

	require.Len(t, commits, 1)
	assert.Equal(t, now, commits[0].Date)
}

func TestNormalizeMessageFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		rec  RawLogRecord
		want string
	}{
		{"primary field wins", RawLogRecord{Message: "feat: login", Subject: "sub", Body: "body", FieldCount: 6}, "feat: login"},
		{"subject when primary empty", RawLogRecord{Subject: "sub line", Body: "sub line\nrest", FieldCount: 6}, "sub line"},
		{"body when both empty", RawLogRecord{Body: "raw body", FieldCount: 6}, "raw body"},
		{"sentinel when all empty", RawLogRecord{FieldCount: 6}, NoMessage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.rec.Hash = "abc1234"
			tc.rec.Author = "Alice"
			tc.rec.Date = "2024-03-14T09:30:00Z"
			commits := testNormalizer(time.Now()).Normalize([]RawLogRecord{tc.rec})
			require.Len(t, commits, 1)
			assert.Equal(t, tc.want, commits[0].Message)
		})
	}
}

func TestNormalizeSubstitutesSentinels(t *testing.T) {
	records := []RawLogRecord{{Date: "2024-03-14T09:30:00Z", Message: "chore: deps", FieldCount: numLogFields}}

	commits := testNormalizer(time.Now()).Normalize(records)

	require.Len(t, commits, 1)
	assert.Equal(t, UnknownHash, commits[0].Hash)
	assert.Equal(t, UnknownAuthor, commits[0].Author)
}

func TestNormalizeSkipsMalformedRecordOnly(t *testing.T) {
	good := func(hash string) RawLogRecord {
		return RawLogRecord{Hash: hash, Author: "Alice", Date: "2024-03-14T09:30:00Z", Message: "msg", FieldCount: numLogFields}
	}
	records := []RawLogRecord{
		good("aaa1111"),
		{Hash: "garbage", FieldCount: 1},
		good("ccc3333"),
	}

	var notices []string
	n := NewNormalizer(func(format string, args ...any) {
		notices = append(notices, format)
	})
	commits := n.Normalize(records)

	require.Len(t, commits, 2)
	assert.Equal(t, "aaa1111", commits[0].Hash)
	assert.Equal(t, "ccc3333", commits[1].Hash)
	assert.Len(t, notices, 1)
}

func TestNormalizeConvertsDatesToLocal(t *testing.T) {
	records := []RawLogRecord{{
		Hash: "abc1234", Author: "Alice", Date: "2024-03-14T09:30:00+11:00",
		Message: "feat: work", FieldCount: numLogFields,
	}}

	commits := testNormalizer(time.Now()).Normalize(records)

	require.Len(t, commits, 1)
	assert.Equal(t, time.Local, commits[0].Date.Location())
	expected, err := time.Parse(time.RFC3339, "2024-03-14T09:30:00+11:00")
	require.NoError(t, err)
	assert.True(t, commits[0].Date.Equal(expected), "instant must survive the conversion")
}

func TestNormalizeParsesCommonDateShapes(t *testing.T) {
	dates := []string{
		"2024-03-14T09:30:00+01:00",
		"2024-03-14 09:30:00 +0100",
		"2024-03-14T09:30:00",
		"2024-03-14",
	}
	for _, d := range dates {
		commits := testNormalizer(time.Now()).Normalize([]RawLogRecord{{
			Hash: "abc", Author: "A", Date: d, Message: "m", FieldCount: numLogFields,
		}})
		require.Len(t, commits, 1, d)
		assert.Equal(t, 2024, commits[0].Date.Year(), d)
		assert.Equal(t, time.March, commits[0].Date.Month(), d)
	}
}
