package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stresshub/db"
	"stresshub/models"
	"stresshub/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotifyUser stores a notification and pushes it to the user's open
// websocket connections.
func NotifyUser(ctx context.Context, userID, notificationType, message string) (*models.Notification, error) {
	notification := models.Notification{
		UserID:    userID,
		Type:      notificationType,
		Message:   message,
		CreatedAt: time.Now(),
	}

	result, err := db.GetCollection(db.NotificationsCollection).InsertOne(ctx, notification)
	if err != nil {
		log.Printf("Error saving notification for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid
	}

	websocket.PushToUser(userID, notification)
	return &notification, nil
}
