package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"koja_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeSchemas maps each table to its key attributes so the fake can build
// item keys the same way the real tables do.
var fakeSchemas = map[string]struct{ pk, sk string }{
	models.LikesTable:                {pk: "likeId"},
	models.MatchesTable:              {pk: "matchId"},
	models.MessagesTable:             {pk: "matchId", sk: "createdAt"},
	models.UserProfilesTable:         {pk: "userId"},
	models.RoomSettingsTable:         {pk: "userId", sk: "matchId"},
	models.NotificationSettingsTable: {pk: "userId"},
	models.ReportsTable:              {pk: "reportId"},
}

// fakeStore is an in-memory Store used by the service tests. It interprets
// only the expressions the services actually issue: key-equality queries,
// SET/REMOVE/ADD/DELETE update clauses and attribute_exists /
// attribute_not_exists transaction conditions.
type fakeStore struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	// reads performed through the strongly consistent path, by table
	consistentReads map[string]int
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables:          make(map[string]map[string]map[string]types.AttributeValue),
		consistentReads: make(map[string]int),
	}
}

func (f *fakeStore) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = make(map[string]map[string]types.AttributeValue)
	}
	return f.tables[name]
}

func attrString(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeStore) keyOf(tableName string, attrs map[string]types.AttributeValue) (string, error) {
	schema, ok := fakeSchemas[tableName]
	if !ok {
		return "", fmt.Errorf("unknown table %q", tableName)
	}
	pk := attrString(attrs[schema.pk])
	if pk == "" {
		return "", fmt.Errorf("missing partition key %q for table %q", schema.pk, tableName)
	}
	if schema.sk == "" {
		return pk, nil
	}
	sk := attrString(attrs[schema.sk])
	if sk == "" {
		return "", fmt.Errorf("missing sort key %q for table %q", schema.sk, tableName)
	}
	return pk + "\x00" + sk, nil
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func (f *fakeStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.keyOf(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return copyItem(item), nil
}

// GetItemConsistent behaves like GetItem (the fake is always consistent)
// but records the call so tests can assert which read path a service used.
func (f *fakeStore) GetItemConsistent(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	f.consistentReads[tableName]++
	f.mu.Unlock()
	return f.GetItem(ctx, tableName, key)
}

func (f *fakeStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.keyOf(tableName, marshaled)
	if err != nil {
		return err
	}
	f.table(tableName)[id] = marshaled
	return nil
}

func resolveName(token string, names map[string]string) string {
	if strings.HasPrefix(token, "#") {
		return names[token]
	}
	return token
}

func (f *fakeStore) UpdateItem(
	ctx context.Context,
	tableName string,
	updateExpression string,
	key map[string]types.AttributeValue,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.keyOf(tableName, key)
	if err != nil {
		return nil, err
	}

	// DynamoDB upserts on update; a missing item starts as just its key.
	item, ok := f.table(tableName)[id]
	if !ok {
		item = copyItem(key)
	}

	tokens := strings.Fields(strings.ReplaceAll(updateExpression, ",", " "))
	mode := ""
	for i := 0; i < len(tokens); {
		switch strings.ToUpper(tokens[i]) {
		case "SET", "REMOVE", "ADD", "DELETE":
			mode = strings.ToUpper(tokens[i])
			i++
			continue
		}

		attr := resolveName(tokens[i], expressionAttributeNames)
		switch mode {
		case "SET":
			if i+2 >= len(tokens) || tokens[i+1] != "=" {
				return nil, fmt.Errorf("unsupported SET clause in %q", updateExpression)
			}
			item[attr] = expressionAttributeValues[tokens[i+2]]
			i += 3
		case "REMOVE":
			delete(item, attr)
			i++
		case "ADD":
			addToStringSet(item, attr, expressionAttributeValues[tokens[i+1]])
			i += 2
		case "DELETE":
			deleteFromStringSet(item, attr, expressionAttributeValues[tokens[i+1]])
			i += 2
		default:
			return nil, fmt.Errorf("unsupported update expression %q", updateExpression)
		}
	}

	f.table(tableName)[id] = item
	return copyItem(item), nil
}

func addToStringSet(item map[string]types.AttributeValue, attr string, value types.AttributeValue) {
	toAdd, ok := value.(*types.AttributeValueMemberSS)
	if !ok {
		return
	}
	existing := map[string]bool{}
	var members []string
	if current, ok := item[attr].(*types.AttributeValueMemberSS); ok {
		members = append(members, current.Value...)
		for _, m := range current.Value {
			existing[m] = true
		}
	}
	for _, m := range toAdd.Value {
		if !existing[m] {
			members = append(members, m)
		}
	}
	item[attr] = &types.AttributeValueMemberSS{Value: members}
}

func deleteFromStringSet(item map[string]types.AttributeValue, attr string, value types.AttributeValue) {
	toDelete, ok := value.(*types.AttributeValueMemberSS)
	if !ok {
		return
	}
	current, ok := item[attr].(*types.AttributeValueMemberSS)
	if !ok {
		return
	}
	remove := map[string]bool{}
	for _, m := range toDelete.Value {
		remove[m] = true
	}
	var members []string
	for _, m := range current.Value {
		if !remove[m] {
			members = append(members, m)
		}
	}
	// DynamoDB drops a set that goes empty
	if len(members) == 0 {
		delete(item, attr)
		return
	}
	item[attr] = &types.AttributeValueMemberSS{Value: members}
}

func (f *fakeStore) QueryItems(ctx context.Context, tableName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return f.QueryItemsWithOptions(ctx, tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames, limit, false)
}

func (f *fakeStore) QueryItemsWithOptions(ctx context.Context, tableName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32, latestFirst bool) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Only "pk = :value" conditions are issued.
	tokens := strings.Fields(keyConditionExpression)
	if len(tokens) != 3 || tokens[1] != "=" {
		return nil, fmt.Errorf("unsupported key condition %q", keyConditionExpression)
	}
	attr := resolveName(tokens[0], expressionAttributeNames)
	target := attrString(expressionAttributeValues[tokens[2]])

	schema := fakeSchemas[tableName]
	var matched []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		if attrString(item[attr]) == target {
			matched = append(matched, copyItem(item))
		}
	}

	if schema.sk != "" {
		sortBySortKey(matched, schema.sk, latestFirst)
	}
	if limit > 0 && int32(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func sortBySortKey(items []map[string]types.AttributeValue, sk string, latestFirst bool) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			a := attrString(items[j-1][sk])
			b := attrString(items[j][sk])
			swap := a > b
			if latestFirst {
				swap = a < b
			}
			if !swap {
				break
			}
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}

func (f *fakeStore) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, result interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var filtered []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, copyItem(item))
		}
	}
	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

func (f *fakeStore) TransactWriteItems(ctx context.Context, items []types.TransactWriteItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	reasons := make([]types.CancellationReason, len(items))
	failed := false
	for i, item := range items {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}

		switch {
		case item.ConditionCheck != nil:
			ok, err := f.evalCondition(*item.ConditionCheck.TableName, item.ConditionCheck.Key, *item.ConditionCheck.ConditionExpression)
			if err != nil {
				return err
			}
			if !ok {
				reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
				failed = true
			}
		case item.Put != nil:
			if item.Put.ConditionExpression != nil {
				ok, err := f.evalCondition(*item.Put.TableName, item.Put.Item, *item.Put.ConditionExpression)
				if err != nil {
					return err
				}
				if !ok {
					reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
					failed = true
				}
			}
		default:
			return fmt.Errorf("unsupported transaction item %d", i)
		}
	}

	if failed {
		return &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, item := range items {
		if item.Put == nil {
			continue
		}
		id, err := f.keyOf(*item.Put.TableName, item.Put.Item)
		if err != nil {
			return err
		}
		f.table(*item.Put.TableName)[id] = copyItem(item.Put.Item)
	}
	return nil
}

func (f *fakeStore) evalCondition(tableName string, keyOrItem map[string]types.AttributeValue, condition string) (bool, error) {
	id, err := f.keyOf(tableName, keyOrItem)
	if err != nil {
		return false, err
	}
	_, exists := f.table(tableName)[id]

	switch {
	case strings.HasPrefix(condition, "attribute_exists("):
		return exists, nil
	case strings.HasPrefix(condition, "attribute_not_exists("):
		return !exists, nil
	default:
		return false, fmt.Errorf("unsupported condition %q", condition)
	}
}
