package learning

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/client"
	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type searchContentParams struct {
	Skills []string `json:"skills,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

type lesson struct {
	Title               string      `json:"title,omitempty"`
	Description         string      `json:"description,omitempty"`
	Order               json.Number `json:"order,omitempty"`
	Required            bool        `json:"required"`
	Type                string      `json:"type,omitempty"`
	Duration            string      `json:"duration,omitempty"`
	ContentURL          string      `json:"contentURL,omitempty"`
	ActivityType        string      `json:"activityType,omitempty"`
	Instructors         []string    `json:"instructors,omitempty"`
	Materials           []string    `json:"materials,omitempty"`
	VirtualClassroomURL string      `json:"virtualClassroomURL,omitempty"`
	Location            string      `json:"location,omitempty"`
	TrackAttendance     bool        `json:"trackAttendance"`
	TrackGrades         bool        `json:"trackGrades"`
}

type contentItem struct {
	Title         string      `json:"title,omitempty"`
	Description   string      `json:"description,omitempty"`
	ID            string      `json:"id,omitempty"`
	ContentNumber string      `json:"contentNumber,omitempty"`
	ContentURL    string      `json:"contentURL,omitempty"`
	Version       string      `json:"version,omitempty"`
	CreatedOn     string      `json:"createdOn,omitempty"`
	AverageRating json.Number `json:"averageRating,omitempty"`
	RatingCount   json.Number `json:"ratingCount,omitempty"`
	Popularity    json.Number `json:"popularity,omitempty"`
	ContentType   string      `json:"contentType,omitempty"`
	Provider      string      `json:"provider,omitempty"`
	AccessType    string      `json:"accessType,omitempty"`
	DeliveryMode  string      `json:"deliveryMode,omitempty"`
	SkillLevel    string      `json:"skillLevel,omitempty"`
	Status        string      `json:"status,omitempty"`
	Skills        []string    `json:"skills,omitempty"`
	Topics        []string    `json:"topics,omitempty"`
	Languages     []string    `json:"languages,omitempty"`
	ImageURL      string      `json:"imageURL,omitempty"`
	Lessons       []lesson    `json:"lessons"`
}

type searchContentResult struct {
	Success bool          `json:"success"`
	Skills  []string      `json:"skills"`
	Topics  []string      `json:"topics"`
	Content []contentItem `json:"content"`
}

// SearchLearningContent handles the search_learning_content tool call. Lesson
// fetches are best effort: a failure for one content item logs a warning and
// leaves that item with an empty lesson list rather than failing the search.
func (t *Tools) SearchLearningContent(ctx context.Context, toolReq *mcp.CallToolRequest, params searchContentParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	skills := normalizeTerms(params.Skills)
	topics := normalizeTerms(params.Topics)

	items, err := t.workday.SearchLearningContent(ctx, wctx.AccessToken, skills, topics)
	if err != nil {
		logger.Error("failed to search learning content", zap.Error(err))
		return nil, nil, err
	}

	content := make([]contentItem, 0, len(items))
	for _, item := range items {
		flattened := flattenContent(item)
		lessons, err := t.workday.Lessons(ctx, wctx.AccessToken, item.ID)
		if err != nil {
			logger.Warn("failed to get lessons for content",
				zap.String("contentId", item.ID), zap.Error(err))
			lessons = nil
		}
		flattened.Lessons = flattenLessons(lessons)
		content = append(content, flattened)
	}

	result := searchContentResult{
		Success: true,
		Skills:  skills,
		Topics:  topics,
		Content: content,
	}

	callResult, err := response.Create(result)
	return callResult, nil, err
}

// normalizeTerms trims each term and drops empties.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term != "" {
			out = append(out, term)
		}
	}
	return out
}

func flattenContent(item client.LearningContent) contentItem {
	return contentItem{
		Title:         item.Descriptor,
		Description:   item.Description,
		ID:            item.ID,
		ContentNumber: item.ContentNumber,
		ContentURL:    item.ContentURL,
		Version:       item.Version,
		CreatedOn:     item.CreatedOnDate,
		AverageRating: item.AverageRating,
		RatingCount:   item.RatingCount,
		Popularity:    item.Popularity,
		ContentType:   item.ContentType.Descriptor,
		Provider:      item.ContentProvider.Descriptor,
		AccessType:    item.AccessType.Descriptor,
		DeliveryMode:  item.DeliveryMode.Descriptor,
		SkillLevel:    item.SkillLevel.Descriptor,
		Status:        item.LifecycleStatus.Descriptor,
		Skills:        descriptors(item.Skills),
		Topics:        descriptors(item.Topics),
		Languages:     descriptors(item.Languages),
		ImageURL:      item.Image.PublicURL,
		Lessons:       []lesson{},
	}
}

func flattenLessons(lessons []client.Lesson) []lesson {
	out := make([]lesson, 0, len(lessons))
	for _, item := range lessons {
		flattened := lesson{
			Title:       item.Descriptor,
			Description: item.Description,
			Order:       item.Order,
			Required:    item.Required,
			Type:        item.ContentType.Descriptor,
		}
		if data := item.InstructorLedData; data != nil {
			flattened.Duration = data.Duration
			flattened.Instructors = descriptors(data.Instructors)
			flattened.VirtualClassroomURL = data.VirtualClassroomData.VirtualClassroomURL
			flattened.Location = data.InPersonLedData.AdhocLocationName
			flattened.TrackAttendance = flattened.TrackAttendance || data.TrackAttendance
			flattened.TrackGrades = flattened.TrackGrades || data.TrackGrades
		}
		if data := item.MediaData; data != nil && flattened.Duration == "" {
			flattened.Duration = data.Duration
		}
		if data := item.ExternalContentData; data != nil {
			flattened.ContentURL = data.ContentURL
		}
		if data := item.TrainingActivityData; data != nil {
			flattened.ActivityType = data.ActivityType.Descriptor
			flattened.Materials = descriptors(data.Materials)
			flattened.TrackAttendance = flattened.TrackAttendance || data.TrackAttendance
			flattened.TrackGrades = flattened.TrackGrades || data.TrackGrades
		}
		out = append(out, flattened)
	}
	return out
}

func descriptors(refs []client.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Descriptor != "" {
			out = append(out, ref.Descriptor)
		}
	}
	return out
}
