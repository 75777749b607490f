package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cenkalti/backoff/v4"

	"github.com/LeonardoBeccarini/plantcare/internal/model/entities"
)

// TableAPI is the slice of the DynamoDB client used by EnsureTable.
type TableAPI interface {
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// EnsureTable creates the threshold table keyed by plant_id if it is missing.
// Meant for local development against DynamoDB Local: the endpoint may still
// be starting, so failures are retried with exponential backoff for up to maxWait.
func EnsureTable(ctx context.Context, api TableAPI, table string, maxWait time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait
	return EnsureTableWithBackOff(ctx, api, table, bo)
}

func EnsureTableWithBackOff(ctx context.Context, api TableAPI, table string, bo backoff.BackOff) error {
	if table == "" {
		return errors.New("dynamo: empty table name")
	}

	op := func() error {
		_, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		if err == nil {
			return nil
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			slog.Warn("dynamo: describe table failed, retrying", "table", table, "error", err)
			return err
		}

		_, err = api.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName: aws.String(table),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(entities.AttrPlantID), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(entities.AttrPlantID), KeyType: types.KeyTypeHash},
			},
			BillingMode: types.BillingModePayPerRequest,
		})
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				return nil // created concurrently
			}
			slog.Warn("dynamo: create table failed, retrying", "table", table, "error", err)
			return err
		}
		slog.Info("dynamo: table created", "table", table)
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("ensure table %s: %w", table, err)
	}
	return nil
}
