package model

// LogStream is the part of a CloudWatch log stream the collector filters on.
type LogStream struct {
	Name         string `json:"logStreamName"`
	CreationTime int64  `json:"creationTime"`
}

// LogEvent is a single matched CloudWatch event, copied as returned by
// FilterLogEvents. Fields keep the service's JSON casing.
type LogEvent struct {
	LogStreamName string `json:"logStreamName"`
	Timestamp     int64  `json:"timestamp"`
	Message       string `json:"message"`
	IngestionTime int64  `json:"ingestionTime"`
	EventID       string `json:"eventId"`
}
