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

// PostRepository implements ports.PostRepository using DynamoDB. Likes and
// comments travel inside the post item; every save writes the whole
// document (read-modify-write, last writer wins).
type PostRepository struct {
	client        *dynamodb.Client
	tableName     string
	indexName     string // GSI1, posts by author
	feedIndexName string // GSI2, global feed
	logger        *zap.Logger
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(client *dynamodb.Client, tableName, indexName, feedIndexName string, logger *zap.Logger) ports.PostRepository {
	return &PostRepository{
		client:        client,
		tableName:     tableName,
		indexName:     indexName,
		feedIndexName: feedIndexName,
		logger:        logger,
	}
}

// postItem represents the DynamoDB item structure for a post with its
// embedded like and comment sub-documents
type postItem struct {
	PK         string        `dynamodbav:"PK"`
	SK         string        `dynamodbav:"SK"`
	GSI1PK     string        `dynamodbav:"GSI1PK"` // USER#<id> for author queries
	GSI1SK     string        `dynamodbav:"GSI1SK"` // POST#<createdAt> for recency ordering
	GSI2PK     string        `dynamodbav:"GSI2PK"` // constant "POST" for the global feed
	GSI2SK     string        `dynamodbav:"GSI2SK"`
	EntityType string        `dynamodbav:"EntityType"`
	PostID     string        `dynamodbav:"PostID"`
	UserID     string        `dynamodbav:"UserID"`
	Name       string        `dynamodbav:"Name,omitempty"`
	Avatar     string        `dynamodbav:"Avatar,omitempty"`
	Title      string        `dynamodbav:"Title"`
	Text       string        `dynamodbav:"Text,omitempty"`
	Link       string        `dynamodbav:"Link,omitempty"`
	Images     []imageItem   `dynamodbav:"Images,omitempty"`
	Likes      []likeItem    `dynamodbav:"Likes"`
	Comments   []commentItem `dynamodbav:"Comments"`
	CreatedAt  string        `dynamodbav:"CreatedAt"`
}

type imageItem struct {
	URL     string `dynamodbav:"URL"`
	Caption string `dynamodbav:"Caption,omitempty"`
}

type likeItem struct {
	ID     string `dynamodbav:"ID"`
	UserID string `dynamodbav:"UserID"`
}

type commentItem struct {
	ID        string `dynamodbav:"ID"`
	UserID    string `dynamodbav:"UserID"`
	Text      string `dynamodbav:"Text"`
	Name      string `dynamodbav:"Name,omitempty"`
	Avatar    string `dynamodbav:"Avatar,omitempty"`
	CreatedAt string `dynamodbav:"CreatedAt"`
}

func postKey(id string) (string, string) {
	return fmt.Sprintf("POST#%s", id), "METADATA"
}

// Save persists a post to DynamoDB
func (r *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	pk, sk := postKey(post.ID)
	createdAt := post.CreatedAt.UTC().Format(time.RFC3339)

	images := make([]imageItem, 0, len(post.Images))
	for _, img := range post.Images {
		images = append(images, imageItem(img))
	}
	likes := make([]likeItem, 0, len(post.Likes))
	for _, like := range post.Likes {
		likes = append(likes, likeItem(like))
	}
	comments := make([]commentItem, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, commentItem{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			Name:      c.Name,
			Avatar:    c.Avatar,
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	item := postItem{
		PK:         pk,
		SK:         sk,
		GSI1PK:     fmt.Sprintf("USER#%s", post.UserID),
		GSI1SK:     fmt.Sprintf("POST#%s#%s", createdAt, post.ID),
		GSI2PK:     "POST",
		GSI2SK:     fmt.Sprintf("%s#%s", createdAt, post.ID),
		EntityType: "POST",
		PostID:     post.ID,
		UserID:     post.UserID,
		Name:       post.Name,
		Avatar:     post.Avatar,
		Title:      post.Title,
		Text:       post.Text,
		Link:       post.Link,
		Images:     images,
		Likes:      likes,
		Comments:   comments,
		CreatedAt:  createdAt,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewDatabaseError("marshal post", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save post", zap.Error(err), zap.String("postID", post.ID))
		return apperrors.NewDatabaseError("save post", err)
	}

	return nil
}

// GetByID retrieves a post by identifier
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	pk, sk := postKey(id)
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get post", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("post")
	}

	var item postItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal post", err)
	}

	return item.toDomain()
}

// List retrieves all posts via the GSI2 feed partition, newest first
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value("POST"))
	return r.queryPosts(ctx, r.feedIndexName, keyCond)
}

// ListByUser retrieves a user's posts via GSI1, newest first
func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID))).
		And(expression.Key("GSI1SK").BeginsWith("POST#"))
	return r.queryPosts(ctx, r.indexName, keyCond)
}

// Delete removes a post
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	pk, sk := postKey(id)
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete post", err)
	}
	return nil
}

// queryPosts pages through an index query in descending sort-key order
func (r *PostRepository) queryPosts(ctx context.Context, indexName string, keyCond expression.KeyConditionBuilder) ([]*domain.Post, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build post query", err)
	}

	posts := []*domain.Post{}
	var lastKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("query posts", err)
		}

		for _, raw := range result.Items {
			var item postItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, apperrors.NewDatabaseError("unmarshal post", err)
			}
			post, err := item.toDomain()
			if err != nil {
				return nil, err
			}
			posts = append(posts, post)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return posts, nil
}

func (i postItem) toDomain() (*domain.Post, error) {
	createdAt, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return nil, apperrors.NewDatabaseError("parse post timestamp", err)
	}

	images := make([]domain.Image, 0, len(i.Images))
	for _, img := range i.Images {
		images = append(images, domain.Image(img))
	}
	likes := make([]domain.Like, 0, len(i.Likes))
	for _, like := range i.Likes {
		likes = append(likes, domain.Like(like))
	}
	comments := make([]domain.Comment, 0, len(i.Comments))
	for _, c := range i.Comments {
		commentedAt, err := time.Parse(time.RFC3339, c.CreatedAt)
		if err != nil {
			return nil, apperrors.NewDatabaseError("parse comment timestamp", err)
		}
		comments = append(comments, domain.Comment{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			Name:      c.Name,
			Avatar:    c.Avatar,
			CreatedAt: commentedAt,
		})
	}

	return &domain.Post{
		ID:        i.PostID,
		UserID:    i.UserID,
		Name:      i.Name,
		Avatar:    i.Avatar,
		Title:     i.Title,
		Text:      i.Text,
		Link:      i.Link,
		Images:    images,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: createdAt,
	}, nil
}
