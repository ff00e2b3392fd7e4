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

// ProfileRepository implements ports.ProfileRepository using DynamoDB.
// The profile lives under its owner's partition so the 1:1 ownership
// invariant holds structurally: there is exactly one PROFILE sort key per
// user partition.
type ProfileRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string // GSI1, used to list all profiles
	logger    *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.ProfileRepository {
	return &ProfileRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// profileItem represents the DynamoDB item structure for a profile with its
// embedded experience and education sub-documents
type profileItem struct {
	PK             string            `dynamodbav:"PK"`
	SK             string            `dynamodbav:"SK"`
	GSI1PK         string            `dynamodbav:"GSI1PK"` // constant "PROFILE" for listing
	GSI1SK         string            `dynamodbav:"GSI1SK"`
	EntityType     string            `dynamodbav:"EntityType"`
	UserID         string            `dynamodbav:"UserID"`
	Company        string            `dynamodbav:"Company,omitempty"`
	Website        string            `dynamodbav:"Website,omitempty"`
	Location       string            `dynamodbav:"Location,omitempty"`
	Status         string            `dynamodbav:"Status"`
	Skills         []string          `dynamodbav:"Skills"`
	Bio            string            `dynamodbav:"Bio,omitempty"`
	GithubUsername string            `dynamodbav:"GithubUsername,omitempty"`
	Social         map[string]string `dynamodbav:"Social,omitempty"`
	Experience     []experienceItem  `dynamodbav:"Experience"`
	Education      []educationItem   `dynamodbav:"Education"`
	CreatedAt      string            `dynamodbav:"CreatedAt"`
	UpdatedAt      string            `dynamodbav:"UpdatedAt"`
}

type experienceItem struct {
	ID          string `dynamodbav:"ID"`
	Title       string `dynamodbav:"Title"`
	Company     string `dynamodbav:"Company"`
	Location    string `dynamodbav:"Location,omitempty"`
	From        string `dynamodbav:"From"`
	To          string `dynamodbav:"To,omitempty"`
	Current     bool   `dynamodbav:"Current"`
	Description string `dynamodbav:"Description,omitempty"`
}

type educationItem struct {
	ID           string `dynamodbav:"ID"`
	School       string `dynamodbav:"School"`
	Degree       string `dynamodbav:"Degree"`
	FieldOfStudy string `dynamodbav:"FieldOfStudy"`
	From         string `dynamodbav:"From"`
	To           string `dynamodbav:"To,omitempty"`
	Current      bool   `dynamodbav:"Current"`
	Description  string `dynamodbav:"Description,omitempty"`
}

func profileKey(userID string) (string, string) {
	return fmt.Sprintf("USER#%s", userID), "PROFILE"
}

// Save persists a profile to DynamoDB. The full document is written; the
// last writer wins on concurrent updates.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	pk, sk := profileKey(profile.UserID)

	experience := make([]experienceItem, 0, len(profile.Experience))
	for _, exp := range profile.Experience {
		experience = append(experience, experienceItem(exp))
	}
	education := make([]educationItem, 0, len(profile.Education))
	for _, edu := range profile.Education {
		education = append(education, educationItem(edu))
	}

	item := profileItem{
		PK:             pk,
		SK:             sk,
		GSI1PK:         "PROFILE",
		GSI1SK:         fmt.Sprintf("USER#%s", profile.UserID),
		EntityType:     "PROFILE",
		UserID:         profile.UserID,
		Company:        profile.Company,
		Website:        profile.Website,
		Location:       profile.Location,
		Status:         profile.Status,
		Skills:         profile.Skills,
		Bio:            profile.Bio,
		GithubUsername: profile.GithubUsername,
		Social:         profile.Social,
		Experience:     experience,
		Education:      education,
		CreatedAt:      profile.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      profile.UpdatedAt.UTC().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewDatabaseError("marshal profile", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save profile", zap.Error(err), zap.String("userID", profile.UserID))
		return apperrors.NewDatabaseError("save profile", err)
	}

	return nil
}

// GetByUserID retrieves the profile owned by a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	pk, sk := profileKey(userID)
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get profile", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("profile")
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal profile", err)
	}

	return item.toDomain()
}

// List retrieves all profiles via the GSI1 "PROFILE" partition
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value("PROFILE"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("build profile list query", err)
	}

	profiles := []*domain.Profile{}
	var lastKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("query profiles", err)
		}

		for _, raw := range result.Items {
			var item profileItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, apperrors.NewDatabaseError("unmarshal profile", err)
			}
			profile, err := item.toDomain()
			if err != nil {
				return nil, err
			}
			profiles = append(profiles, profile)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return profiles, nil
}

// Delete removes the profile owned by a user
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	pk, sk := profileKey(userID)
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	}); err != nil {
		return apperrors.NewDatabaseError("delete profile", err)
	}
	return nil
}

func (i profileItem) toDomain() (*domain.Profile, error) {
	createdAt, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return nil, apperrors.NewDatabaseError("parse profile timestamp", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, i.UpdatedAt)
	if err != nil {
		return nil, apperrors.NewDatabaseError("parse profile timestamp", err)
	}

	experience := make([]domain.Experience, 0, len(i.Experience))
	for _, exp := range i.Experience {
		experience = append(experience, domain.Experience(exp))
	}
	education := make([]domain.Education, 0, len(i.Education))
	for _, edu := range i.Education {
		education = append(education, domain.Education(edu))
	}

	return &domain.Profile{
		UserID:         i.UserID,
		Company:        i.Company,
		Website:        i.Website,
		Location:       i.Location,
		Status:         i.Status,
		Skills:         i.Skills,
		Bio:            i.Bio,
		GithubUsername: i.GithubUsername,
		Social:         i.Social,
		Experience:     experience,
		Education:      education,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}
