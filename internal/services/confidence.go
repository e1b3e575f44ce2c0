package services

import (
	"strconv"
	"strings"

	"github.com/GhanshyamDewangan/Business-Card-OCR/internal/models"
)

// ConfidenceScore rates how well a record was verified: validation and
// an official website weigh the most, the model's own trust score is
// doubled, and registration, leadership and social media each add a
// little.
func ConfidenceScore(r models.CardRecord) int {
	score := 0
	if r.Validated() {
		score += 30
	}
	if r.Website != "" {
		score += 20
	}
	score += trustValue(r.TrustScore) * 2
	if strings.Contains(r.RegistrationStatus, "Active") {
		score += 10
	}
	if len(r.KeyPeople) > 0 {
		score += 10
	}
	if r.SocialMedia != "" {
		score += 10
	}
	return score
}

// trustValue parses the numeric prefix of a trust score, tolerating
// shapes like "7/10".
func trustValue(s string) int {
	s = strings.TrimSpace(strings.SplitN(s, "/", 2)[0])
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
