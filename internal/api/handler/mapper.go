package handler

import (
	"strconv"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
)

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Experience: u.Experience,
		Role:       string(u.Role),
	}
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate.Format(dateLayout),
		EndDate:     p.EndDate.Format(dateLayout),
		Status:      string(p.Status),
		Client: clientResponse{
			ID:    p.Client.ID,
			Name:  p.Client.Name,
			Email: p.Client.Email,
			Phone: p.Client.Phone,
		},
		BuilderID: p.BuilderID,
		ManagerID: p.ManagerID,
		Links:     projectLinks{Self: "/v1/projects/" + strconv.FormatInt(p.ID, 10)},
	}
}

func toListResponse(projects []domain.Project) listProjectsResponse {
	data := make([]projectResponse, 0, len(projects))
	for i := range projects {
		data = append(data, toProjectResponse(&projects[i]))
	}
	return listProjectsResponse{Data: data, Count: len(data)}
}
