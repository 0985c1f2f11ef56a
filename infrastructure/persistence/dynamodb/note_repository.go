package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/notes"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/utils"
)

// NoteRepository implements the NoteRepository interface using DynamoDB.
// Notes live in their owner's partition, so ownership checks are free: a
// lookup keyed by another user's id simply finds nothing.
type NoteRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.NoteRepository {
	return &NoteRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// noteItem represents the DynamoDB item structure for a note
type noteItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	NoteID     string `dynamodbav:"NoteID"`
	UserID     string `dynamodbav:"UserID"`
	Title      string `dynamodbav:"Title"`
	Content    string `dynamodbav:"Content"`
	Category   string `dynamodbav:"Category"`
	Priority   string `dynamodbav:"Priority"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// Create persists a new note
func (r *NoteRepository) Create(ctx context.Context, note *notes.Note) error {
	item := noteItem{
		PK:         UserPK(note.UserID()),
		SK:         NoteSK(note.ID()),
		EntityType: entityTypeNote,
		NoteID:     note.ID(),
		UserID:     note.UserID(),
		Title:      note.Title(),
		Content:    note.Content(),
		Category:   note.Category(),
		Priority:   note.Priority().String(),
		CreatedAt:  utils.FormatRFC3339(note.CreatedAt()),
		UpdatedAt:  utils.FormatRFC3339(note.UpdatedAt()),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal note")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewConflictError("note already exists")
		}

		r.logger.Error("failed to create note",
			zap.String("noteID", note.ID()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("create note", err)
	}

	return nil
}

// GetByID retrieves one of the owner's notes
func (r *NoteRepository) GetByID(ctx context.Context, userID, noteID string) (*notes.Note, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: NoteSK(noteID)},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get note", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("note")
	}

	return unmarshalNote(result.Item)
}

// GetByUserID retrieves all notes in the owner's partition. The PROFILE
// sentinel item never matches the NOTE# range condition, so only notes come
// back. Pages until the query is exhausted.
func (r *NoteRepository) GetByUserID(ctx context.Context, userID string) ([]*notes.Note, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(UserPK(userID))).
		And(expression.Key("SK").BeginsWith(noteKeyPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to build query expression")
	}

	var result []*notes.Note
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastEvaluatedKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query notes", err)
		}

		for _, item := range out.Items {
			note, err := unmarshalNote(item)
			if err != nil {
				r.logger.Warn("skipping malformed note item",
					zap.String("userID", userID),
					zap.Error(err),
				)
				continue
			}
			result = append(result, note)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	return result, nil
}

// Update persists the mutable fields of an existing note
func (r *NoteRepository) Update(ctx context.Context, note *notes.Note) error {
	update := expression.Set(expression.Name("Title"), expression.Value(note.Title())).
		Set(expression.Name("Content"), expression.Value(note.Content())).
		Set(expression.Name("Category"), expression.Value(note.Category())).
		Set(expression.Name("Priority"), expression.Value(note.Priority().String())).
		Set(expression.Name("UpdatedAt"), expression.Value(utils.FormatRFC3339(note.UpdatedAt())))

	cond := expression.AttributeExists(expression.Name("PK"))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to build update expression")
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(note.UserID())},
			"SK": &types.AttributeValueMemberS{Value: NoteSK(note.ID())},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewNotFoundError("note")
		}
		return pkgerrors.NewDatabaseError("update note", err)
	}

	return nil
}

// Delete removes one of the owner's notes
func (r *NoteRepository) Delete(ctx context.Context, userID, noteID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: NoteSK(noteID)},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewNotFoundError("note")
		}
		return pkgerrors.NewDatabaseError("delete note", err)
	}

	return nil
}

func unmarshalNote(item map[string]types.AttributeValue) (*notes.Note, error) {
	var stored noteItem
	if err := attributevalue.UnmarshalMap(item, &stored); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal note")
	}

	createdAt, err := utils.ParseRFC3339(stored.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	updatedAt, err := utils.ParseRFC3339(stored.UpdatedAt)
	if err != nil {
		updatedAt = createdAt
	}

	return notes.ReconstructNote(
		stored.NoteID,
		stored.UserID,
		stored.Title,
		stored.Content,
		stored.Category,
		notes.Priority(stored.Priority),
		createdAt,
		updatedAt,
	)
}
