package dynamodb

import (
	"context"
	"fmt"
	"time"

	"devlink-backend/application/ports"
	"devlink-backend/domain"
	apperrors "devlink-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository using DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string // GSI1, used for email lookups
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for a user
type userItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"` // EMAIL#<email> for unique email lookups
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
	Name       string `dynamodbav:"Name"`
	Email      string `dynamodbav:"Email"`
	Password   string `dynamodbav:"Password"`
	Avatar     string `dynamodbav:"Avatar"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

func userKey(id string) (string, string) {
	return fmt.Sprintf("USER#%s", id), "METADATA"
}

// Save persists a user to DynamoDB
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	pk, sk := userKey(user.ID)
	item := userItem{
		PK:         pk,
		SK:         sk,
		GSI1PK:     fmt.Sprintf("EMAIL#%s", user.Email),
		GSI1SK:     "USER",
		EntityType: "USER",
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Password:   user.Password,
		Avatar:     user.Avatar,
		CreatedAt:  user.CreatedAt.UTC().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewDatabaseError("marshal user", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save user", zap.Error(err), zap.String("userID", user.ID))
		return apperrors.NewDatabaseError("save user", err)
	}

	return nil
}

// GetByID retrieves a user by identifier
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	pk, sk := userKey(id)
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal user", err)
	}

	return item.toDomain()
}

// GetByEmail retrieves a user by unique email via GSI1
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("EMAIL#%s", email)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build email query", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query user by email", err)
	}
	if len(result.Items) == 0 {
		return nil, apperrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal user", err)
	}

	return item.toDomain()
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	pk, sk := userKey(id)
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete user", err)
	}
	return nil
}

func (i userItem) toDomain() (*domain.User, error) {
	createdAt, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return nil, apperrors.NewDatabaseError("parse user timestamp", err)
	}

	return &domain.User{
		ID:        i.UserID,
		Name:      i.Name,
		Email:     i.Email,
		Password:  i.Password,
		Avatar:    i.Avatar,
		CreatedAt: createdAt,
	}, nil
}
