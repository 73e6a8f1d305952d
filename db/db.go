package db

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"
)

// BatchGetItem refuses more keys than this in one call.
const maxBatchKeys = 100

var ErrTooManyIds = errors.Errorf("at most %d ids per lookup", maxBatchKeys)

// ConversionRecord is written once per finished conversion.
type ConversionRecord struct {
	ID        string    `dynamodbav:"PK" json:"id"`
	Source    string    `dynamodbav:"Source" json:"source"`
	Width     int       `dynamodbav:"Width" json:"width"`
	Height    int       `dynamodbav:"Height" json:"height"`
	Tracks    int       `dynamodbav:"Tracks" json:"tracks"`
	NoteCount uint64    `dynamodbav:"NoteCount" json:"note_count"`
	CreatedAt time.Time `dynamodbav:"CreatedAt" json:"created_at"`
}

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewStore(endpoint string, table string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewStoreWithClient(dynamodb.New(sess), table), nil
}

func NewStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func (s *Store) PutConversion(r ConversionRecord) error {
	item, err := dynamodbattribute.MarshalMap(r)
	if err != nil {
		return errors.Wrap(err, "could not marshal conversion record")
	}
	_, err = s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrapf(err, "could not put conversion %s", r.ID)
}

// GetConversions looks up records by id. Unknown ids are left out.
func (s *Store) GetConversions(ids []string) (map[string]ConversionRecord, error) {
	if len(ids) > maxBatchKeys {
		return nil, errors.Wrapf(ErrTooManyIds, "got %d", len(ids))
	}
	res := make(map[string]ConversionRecord)
	if len(ids) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		})
	}
	out, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			s.table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "error from DynamoDB")
	}

	for _, item := range out.Responses[s.table] {
		var r ConversionRecord
		if err := dynamodbattribute.UnmarshalMap(item, &r); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal conversion record")
		}
		res[r.ID] = r
	}
	return res, nil
}
