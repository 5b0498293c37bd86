package employee

type Employee struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"size:255;not null"`
	Position string `gorm:"size:255;not null"`
	Contact  string `gorm:"size:50;not null"`
}

func (Employee) TableName() string {
	return "employees"
}
