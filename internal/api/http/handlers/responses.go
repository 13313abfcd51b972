package handlers

import (
	"github.com/spec-kit/housekeeping-service/internal/api/dto"
	"github.com/spec-kit/housekeeping-service/internal/domain"
)

func snapshotResponse(snap *domain.Snapshot) dto.SnapshotResponse {
	resp := dto.SnapshotResponse{
		Staff:    make([]dto.StaffResponse, 0, len(snap.Staff)),
		Rooms:    make([]dto.RoomResponse, 0, len(snap.Rooms)),
		Tasks:    make([]dto.TaskResponse, 0, len(snap.Tasks)),
		Activity: make([]dto.ActivityResponse, 0, len(snap.Activity)),
	}
	for i := range snap.Staff {
		resp.Staff = append(resp.Staff, staffResponse(&snap.Staff[i]))
	}
	for i := range snap.Rooms {
		resp.Rooms = append(resp.Rooms, roomResponse(&snap.Rooms[i]))
	}
	for i := range snap.Tasks {
		resp.Tasks = append(resp.Tasks, taskResponse(&snap.Tasks[i]))
	}
	for i := range snap.Activity {
		entry := snap.Activity[i]
		resp.Activity = append(resp.Activity, dto.ActivityResponse{
			ID:    entry.ID,
			Event: entry.Event,
			Date:  entry.Date,
		})
	}
	return resp
}

func staffResponse(staff *domain.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		ID:       staff.ID,
		Name:     staff.Name,
		Role:     staff.Role,
		Type:     staff.Type,
		Status:   staff.Status,
		Assigned: staff.Assigned,
	}
}

func roomResponse(room *domain.Room) dto.RoomResponse {
	return dto.RoomResponse{ID: room.ID, Status: room.Status}
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:       task.ID,
		Title:    task.Title,
		Assignee: task.Assignee,
		Room:     task.Room,
		Status:   task.Status,
	}
	if task.DoneOn != nil {
		doneOn := task.DoneOn.Format(domain.ActivityDateLayout)
		resp.DoneOn = &doneOn
	}
	return resp
}
