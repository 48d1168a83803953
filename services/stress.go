package services

import (
	"context"
	"fmt"
	"time"

	"stresshub/db"
	"stresshub/models"
	"stresshub/scoring"
	"stresshub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// assessmentWindow scopes the tasks that count toward workload stress.
const assessmentWindow = 24 * time.Hour

// StressQuestions are the PSS-10 items presented to the user, adapted
// to a 24-hour recall window.
var StressQuestions = []string{
	"During the past 24 hours, how often did you feel like this? Something happened that surprised or upset you.",
	"During the past 24 hours, how often did you feel like this? You felt like you couldn't control important things in your life.",
	"During the past 24 hours, how often did you feel like this? You felt nervous or stressed.",
	"During the past 24 hours, how often did you feel like this? You felt sure you could solve your problems.",
	"During the past 24 hours, how often did you feel like this? Things were going well for you.",
	"During the past 24 hours, how often did you feel like this? You had too many things to do and felt you couldn't manage.",
	"During the past 24 hours, how often did you feel like this? You were able to stay calm when something annoyed you.",
	"During the past 24 hours, how often did you feel like this? You felt in control of your day.",
	"During the past 24 hours, how often did you feel like this? You got angry about things you couldn't control.",
	"During the past 24 hours, how often did you feel like this? You felt like problems were too much for you.",
}

// AssessmentResult bundles the stored record with the full scoring and
// workload breakdowns for the submission response.
type AssessmentResult struct {
	Record    models.StressScore `json:"record"`
	Breakdown scoring.Breakdown  `json:"breakdown"`
	Workload  WorkloadBreakdown  `json:"workload"`
}

// FetchRecentTasks returns the employee's tasks created in the trailing
// 24 hours, the window the workload signal is computed over.
func FetchRecentTasks(ctx context.Context, employeeID string) ([]models.Task, error) {
	since := time.Now().Add(-assessmentWindow)

	cursor, err := db.GetCollection(db.TasksCollection).Find(ctx, bson.M{
		"employeeId": employeeID,
		"createdAt":  bson.M{"$gte": since},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// SubmitAssessment scores a PSS-10 submission against the caller's
// current workload and upserts their single stress score record.
// Supervisors cannot share with their supervisor and HR managers cannot
// share at all, so those flags are forced off by role before storing.
func SubmitAssessment(ctx context.Context, userID, email string, role models.Role, answers []int, shareWithSupervisor, shareWithHR bool) (*AssessmentResult, error) {
	tasks, err := FetchRecentTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	workload := ComputeWorkloadStress(tasks, now)

	breakdown, err := scoring.Score(answers, workload.TotalStress)
	if err != nil {
		return nil, err
	}

	if role == models.RoleSupervisor {
		shareWithSupervisor = false
	}
	if role == models.RoleHRManager {
		shareWithSupervisor = false
		shareWithHR = false
	}

	record := models.StressScore{
		EmployeeID:          userID,
		EmployeeName:        displayName(ctx, userID, email),
		Score:               breakdown.FinalScore,
		Level:               breakdown.Level,
		PSSScore:            breakdown.RawPSS,
		NormalizedPSS:       breakdown.NormalizedPSS,
		WorkloadStress:      workload.TotalStress,
		TotalHoursWorked:    workload.TotalHoursWorked,
		ShareWithSupervisor: shareWithSupervisor,
		ShareWithHR:         shareWithHR,
		UpdatedAt:           now,
	}

	collection := db.GetCollection(db.StressScoresCollection)
	update := bson.M{
		"$set": bson.M{
			"employeeName":        record.EmployeeName,
			"score":               record.Score,
			"level":               record.Level,
			"pssScore":            record.PSSScore,
			"normalizedPss":       record.NormalizedPSS,
			"workloadStress":      record.WorkloadStress,
			"totalHoursWorked":    record.TotalHoursWorked,
			"shareWithSupervisor": record.ShareWithSupervisor,
			"shareWithHr":         record.ShareWithHR,
			"updatedAt":           record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"employeeId": userID,
			"createdAt":  now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := collection.UpdateOne(ctx, bson.M{"employeeId": userID}, update, opts); err != nil {
		return nil, fmt.Errorf("failed to store stress score: %w", err)
	}

	var stored models.StressScore
	if err := collection.FindOne(ctx, bson.M{"employeeId": userID}).Decode(&stored); err == nil {
		record = stored
	}

	notifyOnElevatedStress(ctx, record)

	return &AssessmentResult{
		Record:    record,
		Breakdown: *breakdown,
		Workload:  workload,
	}, nil
}

// GetStressScore returns the stored score for an employee, or
// mongo.ErrNoDocuments when no assessment has been submitted yet.
func GetStressScore(ctx context.Context, employeeID string) (*models.StressScore, error) {
	var score models.StressScore
	err := db.GetCollection(db.StressScoresCollection).FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&score)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// UpdateSharing updates the sharing flags on an existing score, applying
// the same role restrictions as submission. Nil flags are left unchanged.
func UpdateSharing(ctx context.Context, employeeID string, role models.Role, shareWithSupervisor, shareWithHR *bool) (*models.StressScore, error) {
	set := bson.M{"updatedAt": time.Now()}
	if shareWithSupervisor != nil {
		value := *shareWithSupervisor
		if role == models.RoleSupervisor || role == models.RoleHRManager {
			value = false
		}
		set["shareWithSupervisor"] = value
	}
	if shareWithHR != nil {
		value := *shareWithHR
		if role == models.RoleHRManager {
			value = false
		}
		set["shareWithHr"] = value
	}

	collection := db.GetCollection(db.StressScoresCollection)
	result := collection.FindOneAndUpdate(ctx,
		bson.M{"employeeId": employeeID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var score models.StressScore
	if err := result.Decode(&score); err != nil {
		return nil, err
	}
	return &score, nil
}

// TeamStressScores returns the scores a supervisor or HR manager is
// allowed to see: supervisors see their own team's scores shared with
// supervisors, HR managers see every employee's scores shared with HR.
func TeamStressScores(ctx context.Context, viewerID string, role models.Role) ([]models.StressScore, int, error) {
	shareField := "shareWithHr"
	if role == models.RoleSupervisor {
		shareField = "shareWithSupervisor"
	}

	memberIDs, err := TeamMemberIDs(ctx, viewerID, role)
	if err != nil {
		return nil, 0, err
	}
	if len(memberIDs) == 0 {
		return nil, 0, nil
	}

	scoreCursor, err := db.GetCollection(db.StressScoresCollection).Find(ctx, bson.M{
		"employeeId": bson.M{"$in": memberIDs},
		shareField:   true,
	}, options.Find().SetSort(bson.D{{Key: "score", Value: -1}}))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch team scores: %w", err)
	}
	defer scoreCursor.Close(ctx)

	var scores []models.StressScore
	if err := scoreCursor.All(ctx, &scores); err != nil {
		return nil, 0, fmt.Errorf("failed to decode team scores: %w", err)
	}
	return scores, len(memberIDs), nil
}

// notifyOnElevatedStress alerts the employee's supervisor when a shared
// score lands in the high or critical band. Notification failures are
// not fatal to the submission.
func notifyOnElevatedStress(ctx context.Context, score models.StressScore) {
	if !score.ShareWithSupervisor {
		return
	}
	if score.Level != scoring.LevelHigh && score.Level != scoring.LevelCritical {
		return
	}

	supervisor, err := findSupervisorFor(ctx, score.EmployeeID)
	if err != nil {
		return
	}

	message := fmt.Sprintf("%s reported a %s stress level (%.1f)", score.EmployeeName, score.Level, score.Score)
	NotifyUser(ctx, supervisor.ID.Hex(), "stress_alert", message)
}

func LookupUser(ctx context.Context, userID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	var user models.User
	if err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func findSupervisorFor(ctx context.Context, employeeID string) (*models.User, error) {
	employee, err := LookupUser(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.TeamID == "" {
		return nil, mongo.ErrNoDocuments
	}

	var supervisor models.User
	err = db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{
		"teamId": employee.TeamID,
		"role":   models.RoleSupervisor,
	}).Decode(&supervisor)
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func displayName(ctx context.Context, userID, email string) string {
	if user, err := LookupUser(ctx, userID); err == nil && user.DisplayName != "" {
		return user.DisplayName
	}
	return utils.ExtractNameFromEmail(email)
}
