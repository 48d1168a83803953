package services

import (
	"context"
	"fmt"

	"stresshub/db"
	"stresshub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TeamMembers resolves the employees a viewer is responsible for:
// a supervisor's own team, or every employee for an HR manager.
func TeamMembers(ctx context.Context, viewerID string, role models.Role) ([]models.User, error) {
	filter := bson.M{"role": models.RoleEmployee}

	if role == models.RoleSupervisor {
		viewer, err := LookupUser(ctx, viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve supervisor: %w", err)
		}
		filter["teamId"] = viewer.TeamID
	}

	cursor, err := db.GetCollection(db.UsersCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.User
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", err)
	}
	return members, nil
}

// TeamMemberIDs returns the hex ids of the viewer's team members.
func TeamMemberIDs(ctx context.Context, viewerID string, role models.Role) ([]string, error) {
	members, err := TeamMembers(ctx, viewerID, role)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.ID.Hex())
	}
	return ids, nil
}

// IsTeamMember reports whether the employee belongs to the viewer's team.
func IsTeamMember(ctx context.Context, viewerID string, role models.Role, employeeID string) (bool, error) {
	ids, err := TeamMemberIDs(ctx, viewerID, role)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == employeeID {
			return true, nil
		}
	}
	return false, nil
}
