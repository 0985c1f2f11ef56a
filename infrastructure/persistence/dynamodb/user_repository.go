package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/domain/identity"
	pkgerrors "notes-backend/pkg/errors"
	"notes-backend/pkg/utils"
)

// UserRepository implements the UserRepository interface using DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for a user profile
type userItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	EntityType   string `dynamodbav:"EntityType"`
	UserID       string `dynamodbav:"UserID"`
	Email        string `dynamodbav:"Email"`
	PasswordHash string `dynamodbav:"PasswordHash"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
	UpdatedAt    string `dynamodbav:"UpdatedAt"`
}

// emailItem claims an email address for a user. Its presence is what makes
// registration conflict detection and email lookup O(1).
type emailItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
}

// Create writes the profile and the email claim in one transaction. Both
// writes are conditional on the key not existing, so registering an already
// claimed email cancels the whole transaction.
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	profile := userItem{
		PK:           UserPK(user.ID()),
		SK:           profileSortKey,
		EntityType:   entityTypeUser,
		UserID:       user.ID(),
		Email:        user.Email(),
		PasswordHash: user.PasswordHash(),
		CreatedAt:    utils.FormatRFC3339(user.CreatedAt()),
		UpdatedAt:    utils.FormatRFC3339(user.UpdatedAt()),
	}

	profileAV, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal user profile")
	}

	claim := emailItem{
		PK:         EmailPK(user.Email()),
		SK:         emailSortKey,
		EntityType: entityTypeEmail,
		UserID:     user.ID(),
	}

	claimAV, err := attributevalue.MarshalMap(claim)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal email claim")
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                profileAV,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                claimAV,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return pkgerrors.NewConflictError("email already registered")
				}
			}
		}

		r.logger.Error("failed to create user",
			zap.String("userID", user.ID()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("create user", err)
	}

	return nil
}

// GetByID retrieves a user profile by its identifier
func (r *UserRepository) GetByID(ctx context.Context, id string) (*identity.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(id)},
			"SK": &types.AttributeValueMemberS{Value: profileSortKey},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	return r.unmarshalUser(result.Item)
}

// GetByEmail resolves the email claim to its user id, then loads the profile
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: EmailPK(email)},
			"SK": &types.AttributeValueMemberS{Value: emailSortKey},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get email claim", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var claim emailItem
	if err := attributevalue.UnmarshalMap(result.Item, &claim); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal email claim")
	}

	return r.GetByID(ctx, claim.UserID)
}

// UpdatePassword replaces the stored hash for an existing profile
func (r *UserRepository) UpdatePassword(ctx context.Context, user *identity.User) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: UserPK(user.ID())},
			"SK": &types.AttributeValueMemberS{Value: profileSortKey},
		},
		UpdateExpression:    aws.String("SET PasswordHash = :hash, UpdatedAt = :updatedAt"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash":      &types.AttributeValueMemberS{Value: user.PasswordHash()},
			":updatedAt": &types.AttributeValueMemberS{Value: utils.FormatRFC3339(user.UpdatedAt())},
		},
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewNotFoundError("user")
		}
		return pkgerrors.NewDatabaseError("update password", err)
	}

	return nil
}

func (r *UserRepository) unmarshalUser(item map[string]types.AttributeValue) (*identity.User, error) {
	var stored userItem
	if err := attributevalue.UnmarshalMap(item, &stored); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to unmarshal user")
	}

	createdAt, err := utils.ParseRFC3339(stored.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	updatedAt, err := utils.ParseRFC3339(stored.UpdatedAt)
	if err != nil {
		updatedAt = createdAt
	}

	return identity.ReconstructUser(stored.UserID, stored.Email, stored.PasswordHash, createdAt, updatedAt)
}
