package dynamodb

// Key layout for the single-table design. Prefixes keep the three item
// namespaces disjoint: a user profile, an email claim and a note can never
// collide, and the PROFILE sentinel never matches the NOTE# range condition.
const (
	userKeyPrefix  = "USER#"
	noteKeyPrefix  = "NOTE#"
	emailKeyPrefix = "EMAIL#"

	profileSortKey = "PROFILE"
	emailSortKey   = "UNIQUE"

	entityTypeUser  = "USER"
	entityTypeEmail = "EMAIL"
	entityTypeNote  = "NOTE"
)

// UserPK builds the partition key for a user's items
func UserPK(userID string) string {
	return userKeyPrefix + userID
}

// NoteSK builds the sort key for a note item
func NoteSK(noteID string) string {
	return noteKeyPrefix + noteID
}

// EmailPK builds the partition key for an email uniqueness item
func EmailPK(email string) string {
	return emailKeyPrefix + email
}
