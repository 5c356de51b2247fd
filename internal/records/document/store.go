// Copyright (c) 2026 Raduga Center. All rights reserved.

package document

import "context"

// Repository is the persistence contract for documents.
//
// List results omit the binary Data column so a section listing never
// drags file bytes (videos included) through the connection pool.
type Repository interface {
	ListDocuments(ctx context.Context) ([]Document, error)
	GetDocument(ctx context.Context, id int64) (*Document, error)
	CreateDocument(ctx context.Context, document *Document) error
	UpdateDocument(ctx context.Context, document *Document, replaceData bool) error
	DeleteDocument(ctx context.Context, id int64) error
}
