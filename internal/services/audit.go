package services

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

// AuditEntry is the Firestore document written after each completed
// save. It exists for operators; the spreadsheet row is the source of
// truth.
type AuditEntry struct {
	Company       string    `firestore:"company"`
	SchemaVersion string    `firestore:"schemaVersion"`
	Photo1Ref     string    `firestore:"photo1Ref"`
	Photo2Ref     string    `firestore:"photo2Ref,omitempty"`
	Confidence    int       `firestore:"confidenceScore"`
	CreatedAt     time.Time `firestore:"createdAt"`
}

// AuditTrail records completed saves. Failures are absorbed by the
// caller; a save never fails because its audit write did.
type AuditTrail interface {
	RecordSave(ctx context.Context, entry AuditEntry) error
}

// FirestoreAudit writes one document per save into a collection.
type FirestoreAudit struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreAudit returns an audit trail backed by Firestore.
func NewFirestoreAudit(client *firestore.Client, collection string) *FirestoreAudit {
	return &FirestoreAudit{client: client, collection: collection}
}

func (a *FirestoreAudit) RecordSave(ctx context.Context, entry AuditEntry) error {
	_, _, err := a.client.Collection(a.collection).Add(ctx, entry)
	return err
}
