package worker

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/client"
	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

// workerSummary is the flattened profile returned by get_worker.
type workerSummary struct {
	WorkdayID               string `json:"workdayId"`
	WorkerID                string `json:"workerId,omitempty"`
	Name                    string `json:"name,omitempty"`
	Email                   string `json:"email,omitempty"`
	WorkerType              string `json:"workerType,omitempty"`
	BusinessTitle           string `json:"businessTitle,omitempty"`
	Location                string `json:"location,omitempty"`
	LocationID              string `json:"locationId,omitempty"`
	Country                 string `json:"country,omitempty"`
	CountryCode             string `json:"countryCode,omitempty"`
	SupervisoryOrganization string `json:"supervisoryOrganization,omitempty"`
	JobType                 string `json:"jobType,omitempty"`
	JobProfile              string `json:"jobProfile,omitempty"`
	PrimaryJobID            string `json:"primaryJobId,omitempty"`
	PrimaryJobDescriptor    string `json:"primaryJobDescriptor,omitempty"`
}

// GetWorker returns the current worker's flattened Workday profile.
func (t *Tools) GetWorker(ctx context.Context, toolReq *mcp.CallToolRequest, params emptyParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	result, err := response.Create(transformWorker(wctx.Worker))
	if err != nil {
		return nil, nil, err
	}

	return result, nil, nil
}

func transformWorker(w *client.Worker) workerSummary {
	job := w.PrimaryJob
	return workerSummary{
		WorkdayID:               w.ID,
		WorkerID:                w.WorkerID,
		Name:                    w.Descriptor,
		Email:                   w.Person.Email,
		WorkerType:              w.WorkerType.Descriptor,
		BusinessTitle:           job.BusinessTitle,
		Location:                job.Location.Descriptor,
		LocationID:              job.Location.LocationID,
		Country:                 job.Location.Country.Descriptor,
		CountryCode:             job.Location.Country.ISOCode,
		SupervisoryOrganization: job.SupervisoryOrganization.Descriptor,
		JobType:                 job.JobType.Descriptor,
		JobProfile:              job.JobProfile.Descriptor,
		PrimaryJobID:            job.ID,
		PrimaryJobDescriptor:    job.Descriptor,
	}
}
