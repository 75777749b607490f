package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/LeonardoBeccarini/plantcare/internal/model/entities"
)

// UpdateItemAPI is the slice of the DynamoDB client used by ThresholdStore.
type UpdateItemAPI interface {
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

const thresholdUpdateExpr = "SET " +
	entities.AttrMinWaterLevel + " = :" + entities.AttrMinWaterLevel + ", " +
	entities.AttrMinMoistureLevel + " = :" + entities.AttrMinMoistureLevel

// ThresholdStore writes threshold records with one UpdateItem per call.
type ThresholdStore struct {
	api UpdateItemAPI
}

func NewThresholdStore(api UpdateItemAPI) *ThresholdStore {
	return &ThresholdStore{api: api}
}

// UpdateThresholds overwrites both thresholds of rec.PlantID in table and
// returns the record as stored after the update. A nil threshold is written
// as NULL. The item is created if it does not exist yet.
func (s *ThresholdStore) UpdateThresholds(ctx context.Context, table string, rec entities.ThresholdRecord) (map[string]any, error) {
	// nil thresholds marshal to NULL
	av, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("error marshalling threshold record: %w", err)
	}

	out, err := s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			entities.AttrPlantID: av[entities.AttrPlantID],
		},
		UpdateExpression: aws.String(thresholdUpdateExpr),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":" + entities.AttrMinWaterLevel:    av[entities.AttrMinWaterLevel],
			":" + entities.AttrMinMoistureLevel: av[entities.AttrMinMoistureLevel],
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, err
	}

	item := map[string]any{}
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, fmt.Errorf("error unmarshalling updated item: %w", err)
	}
	return item, nil
}
