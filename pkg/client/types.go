package client

import "encoding/json"

// Ref is Workday's generic reference object: an id plus a human-readable
// descriptor. Most nested fields in the REST API are shaped like this.
type Ref struct {
	ID         string `json:"id,omitempty"`
	Descriptor string `json:"descriptor,omitempty"`
}

// Worker is a record from the worker collection endpoint.
type Worker struct {
	ID         string `json:"id"`
	WorkerID   string `json:"workerId"`
	Descriptor string `json:"descriptor"`
	Person     struct {
		Email string `json:"email"`
	} `json:"person"`
	WorkerType Ref        `json:"workerType"`
	PrimaryJob PrimaryJob `json:"primaryJob"`
}

// PrimaryJob is the primary position block of a worker record.
type PrimaryJob struct {
	ID                      string   `json:"id"`
	Descriptor              string   `json:"descriptor"`
	BusinessTitle           string   `json:"businessTitle"`
	Location                Location `json:"location"`
	SupervisoryOrganization Ref      `json:"supervisoryOrganization"`
	JobType                 Ref      `json:"jobType"`
	JobProfile              Ref      `json:"jobProfile"`
}

// Location carries the work location of a primary job.
type Location struct {
	Descriptor string `json:"descriptor"`
	LocationID string `json:"Location_ID"`
	Country    struct {
		Descriptor string `json:"descriptor"`
		ISOCode    string `json:"ISO_3166-1_Alpha-3_Code"`
	} `json:"country"`
}

// AbsenceBalance is one absence plan balance for a worker.
type AbsenceBalance struct {
	AbsencePlan struct {
		ID         string `json:"id"`
		Descriptor string `json:"descriptor"`
		TimeOffs   string `json:"timeoffs"`
	} `json:"absencePlan"`
	Quantity      json.Number `json:"quantity"`
	Unit          Ref         `json:"unit"`
	EffectiveDate string      `json:"effectiveDate"`
}

// AbsenceType is an absence type the worker is eligible to request.
type AbsenceType struct {
	ID               string `json:"id"`
	Descriptor       string `json:"descriptor"`
	UnitOfTime       Ref    `json:"unitOfTime"`
	Category         Ref    `json:"category"`
	AbsenceTypeGroup Ref    `json:"absenceTypeGroup"`
}

// LeaveOfAbsence is a leave-of-absence event on the worker's record.
type LeaveOfAbsence struct {
	ID                      string `json:"id"`
	LeaveType               Ref    `json:"leaveType"`
	Status                  Ref    `json:"status"`
	FirstDayOfLeave         string `json:"firstDayOfLeave"`
	LastDayOfWork           string `json:"lastDayOfWork"`
	EstimatedLastDayOfLeave string `json:"estimatedLastDayOfLeave"`
	LatestLeaveComment      string `json:"latestLeaveComment"`
}

// TimeOffDetail is one booked time-off day.
type TimeOffDetail struct {
	Date        string      `json:"date"`
	TimeOffType Ref         `json:"timeOffType"`
	Quantity    json.Number `json:"quantity"`
	Unit        Ref         `json:"unit"`
	Status      Ref         `json:"status"`
	Comment     string      `json:"comment"`
}

// DirectReport is a worker reporting to the current worker.
type DirectReport struct {
	Descriptor                     string `json:"descriptor"`
	IsManager                      bool   `json:"isManager"`
	PrimaryWorkPhone               string `json:"primaryWorkPhone"`
	PrimaryWorkEmail               string `json:"primaryWorkEmail"`
	PrimarySupervisoryOrganization Ref    `json:"primarySupervisoryOrganization"`
	BusinessTitle                  string `json:"businessTitle"`
}

// InboxTask is a pending task in the worker's Workday inbox.
type InboxTask struct {
	Descriptor     string `json:"descriptor"`
	Assigned       string `json:"assigned"`
	Due            string `json:"due"`
	Initiator      Ref    `json:"initiator"`
	Status         Ref    `json:"status"`
	StepType       Ref    `json:"stepType"`
	Subject        Ref    `json:"subject"`
	OverallProcess Ref    `json:"overallProcess"`
}

// PaySlip is one payroll result for the worker.
type PaySlip struct {
	Descriptor string      `json:"descriptor"`
	Date       string      `json:"date"`
	Gross      json.Number `json:"gross"`
	Net        json.Number `json:"net"`
	Status     Ref         `json:"status"`
}

// TimeOffEntry is one time-off entry with its originating request.
type TimeOffEntry struct {
	Descriptor     string      `json:"descriptor"`
	Date           string      `json:"date"`
	Units          json.Number `json:"units"`
	UnitOfTime     Ref         `json:"unitOfTime"`
	Employee       Ref         `json:"employee"`
	TimeOffRequest struct {
		Descriptor string `json:"descriptor"`
		Status     string `json:"status"`
	} `json:"timeOffRequest"`
	TimeOff struct {
		Descriptor string `json:"descriptor"`
		Plan       Ref    `json:"plan"`
	} `json:"timeOff"`
}

// LearningAssignment is a row of the Required_Learning custom report. The
// report serializes booleans as "1"/"0" strings.
type LearningAssignment struct {
	AssignmentStatus string `json:"assignmentStatus"`
	DueDate          string `json:"dueDate"`
	LearningContent  string `json:"learningContent"`
	Overdue          string `json:"overdue"`
	Required         string `json:"required"`
	WorkdayID        string `json:"workdayId"`
}

// LearningContent is a learning catalog item.
type LearningContent struct {
	ID                         string      `json:"id"`
	Descriptor                 string      `json:"descriptor"`
	Description                string      `json:"description"`
	ContentNumber              string      `json:"contentNumber"`
	ContentURL                 string      `json:"contentURL"`
	Version                    string      `json:"version"`
	CreatedOnDate              string      `json:"createdOnDate"`
	AverageRating              json.Number `json:"averageRating"`
	RatingCount                json.Number `json:"ratingCount"`
	Popularity                 json.Number `json:"popularity"`
	ContentType                Ref         `json:"contentType"`
	ContentProvider            Ref         `json:"contentProvider"`
	AccessType                 Ref         `json:"accessType"`
	DeliveryMode               Ref         `json:"deliveryMode"`
	SkillLevel                 Ref         `json:"skillLevel"`
	LifecycleStatus            Ref         `json:"lifecycleStatus"`
	AvailabilityStatus         Ref         `json:"availabilityStatus"`
	ExcludeFromRecommendations bool        `json:"excludeFromRecommendations"`
	ExcludeFromSearchAndBrowse bool        `json:"excludeFromSearchAndBrowse"`
	LearningCatalogs           []Ref       `json:"learningCatalogs"`
	Languages                  []Ref       `json:"languages"`
	Skills                     []Ref       `json:"skills"`
	Topics                     []Ref       `json:"topics"`
	SecurityCategories         []Ref       `json:"securityCategories"`
	ContactPersons             []Ref       `json:"contactPersons"`
	Image                      struct {
		PublicURL string `json:"publicURL"`
	} `json:"image"`
}

// Lesson is one lesson of a learning content item. Delivery-specific blocks
// are optional and only present for the matching lesson type.
type Lesson struct {
	ID                   string                `json:"id"`
	Descriptor           string                `json:"descriptor"`
	Description          string                `json:"description"`
	Order                json.Number           `json:"order"`
	Required             bool                  `json:"required"`
	ContentType          Ref                   `json:"contentType"`
	InstructorLedData    *InstructorLedData    `json:"instructorLedData"`
	MediaData            *MediaData            `json:"mediaData"`
	ExternalContentData  *ExternalContentData  `json:"externalContentData"`
	TrainingActivityData *TrainingActivityData `json:"trainingActivityData"`
}

// InstructorLedData describes an instructor-led lesson.
type InstructorLedData struct {
	Duration             string `json:"duration"`
	Instructors          []Ref  `json:"instructors"`
	TrackAttendance      bool   `json:"trackAttendance"`
	TrackGrades          bool   `json:"trackGrades"`
	VirtualClassroomData struct {
		VirtualClassroomURL string `json:"virtualClassroomURL"`
	} `json:"virtualClassroomData"`
	InPersonLedData struct {
		AdhocLocationName string `json:"adhocLocationName"`
	} `json:"inPersonLedData"`
}

// MediaData describes a media lesson.
type MediaData struct {
	Duration string `json:"duration"`
}

// ExternalContentData describes an externally hosted lesson.
type ExternalContentData struct {
	ContentURL string `json:"contentURL"`
}

// TrainingActivityData describes a training activity lesson.
type TrainingActivityData struct {
	ActivityType    Ref   `json:"activityType"`
	Materials       []Ref `json:"materials"`
	TrackAttendance bool  `json:"trackAttendance"`
	TrackGrades     bool  `json:"trackGrades"`
}

// TimeOffDay is one day entry of a time-off request.
type TimeOffDay struct {
	Date          string `json:"date"`
	Start         string `json:"start"`
	End           string `json:"end"`
	DailyQuantity string `json:"dailyQuantity"`
	Comment       string `json:"comment"`
	TimeOffType   Ref    `json:"timeOffType"`
}

// TimeOffRequest is the body POSTed to the requestTimeOff endpoint.
type TimeOffRequest struct {
	Days []TimeOffDay `json:"days"`
}

// BookingResponse is the decoded requestTimeOff response. Raw preserves the
// full response body for callers that surface it verbatim.
type BookingResponse struct {
	Days                      []json.RawMessage `json:"days"`
	BusinessProcessParameters struct {
		OverallBusinessProcess Ref    `json:"overallBusinessProcess"`
		OverallStatus          string `json:"overallStatus"`
		TransactionStatus      Ref    `json:"transactionStatus"`
	} `json:"businessProcessParameters"`

	Raw map[string]any `json:"-"`
}
