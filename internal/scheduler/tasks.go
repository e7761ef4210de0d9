package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskListingNotify = "listings.notify"

const TaskAssetsCleanup = "assets.cleanup"

type ListingNotifyPayload struct {
	Kind       string `json:"kind"`
	DocumentID string `json:"documentId"`
	UserID     string `json:"userId"`
	Type       string `json:"type,omitempty"`
	NameEn     string `json:"nameEn"`
	NameAr     string `json:"nameAr"`
	Edited     bool   `json:"edited,omitempty"`
}

type AssetsCleanupPayload struct {
	AssetIDs []string `json:"assetIds"`
	Reason   string   `json:"reason"`
}

func NewListingNotifyTask(payload ListingNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskListingNotify, data), nil
}

func ParseListingNotifyPayload(task *asynq.Task) (ListingNotifyPayload, error) {
	var payload ListingNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ListingNotifyPayload{}, err
	}
	return payload, nil
}

func NewAssetsCleanupTask(payload AssetsCleanupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAssetsCleanup, data), nil
}

func ParseAssetsCleanupPayload(task *asynq.Task) (AssetsCleanupPayload, error) {
	var payload AssetsCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AssetsCleanupPayload{}, err
	}
	return payload, nil
}
