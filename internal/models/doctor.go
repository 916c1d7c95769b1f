package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/hospital-api/internal/scheduling"
)

// Doctor carries the schedule configuration the slot generator runs on.
type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DepartmentID   primitive.ObjectID `bson:"departmentId" json:"departmentId"`
	Name           string             `bson:"name" json:"name"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Schedule       scheduling.Config  `bson:"schedule" json:"schedule"`
}

type Department struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}
