package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/genproto/googleapis/type/latlng"
)

// Firestore writes to a Cloud Firestore database with a service account.
type Firestore struct {
	client *firestore.Client
}

// OpenFirestore authorizes with the credential file at credentialsFile.
// An empty projectID is detected from the credentials.
func OpenFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

func (f *Firestore) DeleteWhere(ctx context.Context, collection string, filters ...Filter) (int, error) {
	q := f.client.Collection(collection).Query
	for _, flt := range filters {
		q = q.Where(flt.Field, "==", flt.Value)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return 0, &OpError{Op: "query", Collection: collection, Err: err}
	}
	if len(docs) == 0 {
		return 0, nil
	}

	bw := f.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		j, err := bw.Delete(d.Ref)
		if err != nil {
			bw.End()
			return 0, &OpError{Op: "delete", Collection: collection, ID: d.Ref.ID, Err: err}
		}
		jobs = append(jobs, j)
	}
	bw.End()
	for i, j := range jobs {
		if _, err := j.Results(); err != nil {
			return i, &OpError{Op: "delete", Collection: collection, ID: docs[i].Ref.ID, Err: err}
		}
	}
	return len(docs), nil
}

func (f *Firestore) Upsert(ctx context.Context, collection, id string, doc Document) error {
	_, err := f.client.Collection(collection).Doc(id).Set(ctx, firestoreData(doc), firestore.MergeAll)
	if err != nil {
		return &OpError{Op: "upsert", Collection: collection, ID: id, Err: err}
	}
	return nil
}

func (f *Firestore) Close() error { return f.client.Close() }

// firestoreData maps sentinels to their native Firestore values.
func firestoreData(doc Document) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = firestore.ServerTimestamp
		case GeoPoint:
			out[k] = &latlng.LatLng{Latitude: tv.Lat, Longitude: tv.Lng}
		default:
			out[k] = v
		}
	}
	return out
}
