package profile

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/logging"
)

const usersCollection = "users"

// Firestore field names of a users/{uid} document.
const (
	fieldRole             = "role"
	fieldName             = "name"
	fieldEmail            = "email"
	fieldPhoneCountryCode = "phone_country_code"
	fieldMobile           = "mobile"
	fieldAddress          = "address"
	fieldBio              = "bio"
	fieldCreatedAt        = "created_at"
	fieldUpdatedAt        = "updated_at"
)

type firestoreProfile struct {
	Role             string    `firestore:"role"`
	Name             string    `firestore:"name"`
	Email            string    `firestore:"email"`
	PhoneCountryCode string    `firestore:"phone_country_code"`
	Mobile           string    `firestore:"mobile"`
	Address          string    `firestore:"address"`
	Bio              string    `firestore:"bio"`
	CreatedAt        time.Time `firestore:"created_at"`
	UpdatedAt        time.Time `firestore:"updated_at"`
}

func (fp firestoreProfile) toProfile(id string) *Profile {
	return &Profile{
		ID:               id,
		Role:             fp.Role,
		Name:             fp.Name,
		Email:            fp.Email,
		PhoneCountryCode: fp.PhoneCountryCode,
		Mobile:           fp.Mobile,
		Address:          fp.Address,
		Bio:              fp.Bio,
		CreatedAt:        fp.CreatedAt,
		UpdatedAt:        fp.UpdatedAt,
	}
}

// FirestoreStore implements Service on the users collection.
type FirestoreStore struct {
	client *firestore.Client
	norm   normalizer
}

// NewFirestoreStore returns a store that parses mobile numbers with parser,
// or with phone.DefaultParser when parser is nil.
func NewFirestoreStore(client *firestore.Client, parser *phone.Parser) *FirestoreStore {
	return &FirestoreStore{client: client, norm: newNormalizer(parser)}
}

func (s *FirestoreStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(userID)
}

// Upsert merges params into users/{uid}, creating the document when absent.
// created_at is written only on creation; updated_at always takes the server
// timestamp.
func (s *FirestoreStore) Upsert(ctx context.Context, userID string, params UpsertParams) (*Profile, error) {
	f, err := s.norm.upsert(params)
	if err != nil {
		return nil, logging.AuditOutcome(ctx, auditEvent("upsert", userID), err, categorizeError)
	}

	ref := s.doc(userID)
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		exists := err == nil && snap.Exists()
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		data := f.firestoreData()
		data[fieldUpdatedAt] = firestore.ServerTimestamp
		if !exists {
			data[fieldCreatedAt] = firestore.ServerTimestamp
			if _, ok := data[fieldRole]; !ok {
				data[fieldRole] = roleConsumer
			}
		}
		return tx.Set(ref, data, firestore.MergeAll)
	})
	if err != nil {
		return nil, logging.AuditOutcome(ctx, auditEvent("upsert", userID), err, categorizeError)
	}

	p, err := s.Get(ctx, userID)
	return p, logging.AuditOutcome(ctx, auditEvent("upsert", userID), err, categorizeError)
}

// Get reads users/{uid}.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	snap, err := s.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestoreProfile
	if err := snap.DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.toProfile(userID), nil
}

// Update patches an existing profile inside a transaction.
func (s *FirestoreStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	f, err := s.norm.update(params)
	if err != nil {
		return nil, logging.AuditOutcome(ctx, auditEvent("update", userID), err, categorizeError)
	}

	ref := s.doc(userID)
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		updates := []firestore.Update{{Path: fieldUpdatedAt, Value: firestore.ServerTimestamp}}
		for path, v := range f.firestoreData() {
			updates = append(updates, firestore.Update{Path: path, Value: v})
		}
		return tx.Update(ref, updates)
	})
	if err != nil {
		return nil, logging.AuditOutcome(ctx, auditEvent("update", userID), err, categorizeError)
	}

	p, err := s.Get(ctx, userID)
	return p, logging.AuditOutcome(ctx, auditEvent("update", userID), err, categorizeError)
}

// Delete removes users/{uid}, failing with ErrNotFound when it is absent.
func (s *FirestoreStore) Delete(ctx context.Context, userID string) error {
	ref := s.doc(userID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(ref)
	})
	return logging.AuditOutcome(ctx, auditEvent("delete", userID), err, categorizeError)
}

// firestoreData returns the present fields keyed by document field name.
func (f fields) firestoreData() map[string]any {
	data := map[string]any{}
	add := func(key string, v *string) {
		if v != nil {
			data[key] = *v
		}
	}
	add(fieldRole, f.role)
	add(fieldName, f.name)
	add(fieldEmail, f.email)
	add(fieldPhoneCountryCode, f.countryCode)
	add(fieldMobile, f.mobile)
	add(fieldAddress, f.address)
	add(fieldBio, f.bio)
	return data
}

var _ Service = (*FirestoreStore)(nil)
