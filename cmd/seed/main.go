// Seeds a development database with a couple of users, a circle and a
// watchstream so the API has something to serve locally.
package main

import (
	"log"
	"time"

	"movie-circles/internal/database"
	"movie-circles/internal/models"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db := database.DB

	owner := models.User{
		GoogleID:    "seed-owner",
		Email:       "owner@example.com",
		Name:        "Seed Owner",
		LastLoginAt: time.Now(),
	}
	if err := db.FirstOrCreate(&owner, models.User{GoogleID: "seed-owner"}).Error; err != nil {
		log.Fatal("Failed to seed owner:", err)
	}

	member := models.User{
		GoogleID:    "seed-member",
		Email:       "member@example.com",
		Name:        "Seed Member",
		LastLoginAt: time.Now(),
	}
	if err := db.FirstOrCreate(&member, models.User{GoogleID: "seed-member"}).Error; err != nil {
		log.Fatal("Failed to seed member:", err)
	}

	movie := models.Movie{
		TMDBID:     603,
		Title:      "The Matrix",
		Overview:   "A computer hacker learns about the true nature of reality.",
		Year:       1999,
		Popularity: 85.1,
		GenreIDs:   pq.Int64Array{28, 878},
	}
	if err := db.FirstOrCreate(&movie, models.Movie{TMDBID: 603}).Error; err != nil {
		log.Fatal("Failed to seed movie:", err)
	}

	circle := models.Circle{
		OwnerID:     owner.ID,
		Name:        "Film Club",
		Description: "Seed circle",
	}
	if err := db.FirstOrCreate(&circle, models.Circle{OwnerID: owner.ID, Name: "Film Club"}).Error; err != nil {
		log.Fatal("Failed to seed circle:", err)
	}

	now := time.Now()
	membership := models.CircleMember{
		CircleID:    circle.ID,
		UserID:      member.ID,
		Status:      models.MemberStatusAccepted,
		InvitedByID: owner.ID,
		JoinedAt:    &now,
	}
	if err := db.FirstOrCreate(&membership, models.CircleMember{CircleID: circle.ID, UserID: member.ID}).Error; err != nil {
		log.Fatal("Failed to seed membership:", err)
	}

	stream := models.Watchstream{
		UserID: owner.ID,
		Name:   "Friday Night",
	}
	if err := db.FirstOrCreate(&stream, models.Watchstream{UserID: owner.ID, Name: "Friday Night"}).Error; err != nil {
		log.Fatal("Failed to seed watchstream:", err)
	}

	entry := models.WatchstreamMovie{
		WatchstreamID: stream.ID,
		MovieTMDBID:   movie.TMDBID,
		WatchStatus:   models.WatchStatusBacklog,
	}
	if err := db.FirstOrCreate(&entry, models.WatchstreamMovie{WatchstreamID: stream.ID, MovieTMDBID: movie.TMDBID}).Error; err != nil {
		log.Fatal("Failed to seed watchstream entry:", err)
	}

	log.Println("Seed data created")
}
