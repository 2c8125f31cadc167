package models

type Country struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Region struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `gorm:"not null;uniqueIndex:idx_regions_country_name" json:"name"`
	CountryID uint   `gorm:"not null;uniqueIndex:idx_regions_country_name" json:"countryId"`

	Country Country `gorm:"foreignKey:CountryID;references:ID" json:"-"`
}

// UserRegion links a user to a region; at most one row per user has
// Primary set.
type UserRegion struct {
	ID       uint `gorm:"primarykey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_regions_pair" json:"userId"`
	RegionID uint `gorm:"not null;uniqueIndex:idx_user_regions_pair" json:"regionId"`
	Primary  bool `gorm:"not null;default:false" json:"primary"`

	User   User   `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Region Region `gorm:"foreignKey:RegionID;references:ID" json:"-"`
}

type CountryOrRegionPayload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
