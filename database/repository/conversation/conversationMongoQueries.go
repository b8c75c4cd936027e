// File: database/repository/conversation/conversationMongoQueries.go
package convRepo

import (
	"fmt"
	"time"

	"estately/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a conversation by its unique ID.
func (r *MongoConversationRepo) GetByID(id string) (*models.Conversation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var conv models.Conversation
	if err := r.convColl.FindOne(ctx, bson.M{"id": id}).Decode(&conv); err != nil {
		return nil, fmt.Errorf("failed to fetch conversation with id %s: %w", id, err)
	}
	return &conv, nil
}

// ListByUser retrieves all conversations owned by a user, newest first.
func (r *MongoConversationRepo) ListByUser(userID string) ([]models.Conversation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.convColl.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var convs []models.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return convs, nil
}

// GetMessages retrieves a conversation's messages in creation order.
func (r *MongoConversationRepo) GetMessages(conversationID string) ([]models.Message, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.msgColl.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages of conversation %s: %w", conversationID, err)
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return msgs, nil
}

// CountMessages returns the number of messages in a conversation.
func (r *MongoConversationRepo) CountMessages(conversationID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.msgColl.CountDocuments(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return 0, fmt.Errorf("failed to count messages of conversation %s: %w", conversationID, err)
	}
	return count, nil
}
