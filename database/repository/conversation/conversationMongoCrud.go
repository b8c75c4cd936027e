// File: database/repository/conversation/conversationMongoCrud.go
package convRepo

import (
	"fmt"
	"time"

	"estately/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new conversation document.
func (r *MongoConversationRepo) Create(conv *models.Conversation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := r.convColl.InsertOne(ctx, conv)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// UpdateTitle back-fills the title of an existing conversation.
func (r *MongoConversationRepo) UpdateTitle(id, title string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"title": title, "updatedAt": time.Now()}}

	result, err := r.convColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update title of conversation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("conversation with id %s not found", id)
	}
	return nil
}

// Delete removes a conversation document and all of its messages.
func (r *MongoConversationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.convColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete conversation with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("conversation with id %s not found", id)
	}

	// Cascade: the conversation owns its messages.
	if _, err := r.msgColl.DeleteMany(ctx, bson.M{"conversationId": id}); err != nil {
		return fmt.Errorf("failed to delete messages of conversation %s: %w", id, err)
	}
	return nil
}

// AppendMessage appends a message document and bumps the owning
// conversation's updatedAt.
func (r *MongoConversationRepo) AppendMessage(msg *models.Message) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	if _, err := r.msgColl.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	update := bson.M{"$set": bson.M{"updatedAt": time.Now()}}
	if _, err := r.convColl.UpdateOne(ctx, bson.M{"id": msg.ConversationID}, update); err != nil {
		return fmt.Errorf("failed to touch conversation %s: %w", msg.ConversationID, err)
	}
	return nil
}
