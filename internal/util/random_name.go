package util

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Speedy", "Trotting", "Weaving", "Waiving", "Gracious", "Healthy", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Alpha", "Growling", "Slithering", "Swimming", "Flying", "Jumping", "Running", "Charging", "Shooting", "Bouncing",
	"Bounding", "Leaping",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Alligator", "Crocodile", "Shark", "Hippo", "Giraffe", "Antelope", "Lion", "Tiger",
	"Bear", "Muskrat", "Otter", "Dolphin", "Porcupine", "Gerbil", "Hedgehog", "Snake", "Lizard", "Chipmunk",
	"Bird", "Dinosaur", "Okapi", "Eagle", "Mandrill", "Bonobo", "Wolf", "Fox", "Armadillo", "Rhino", "Anteater",
	"Reindeer", "Deer", "Panda",
}

var (
	random   = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	randomMu sync.Mutex
)

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	randomMu.Lock()
	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))
	randomMu.Unlock()

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}

// RandomUsername returns a random name that can be used as a username, i.e., "fast-dog-42"
func RandomUsername() string {
	name := strings.ToLower(strings.ReplaceAll(GetRandomName(), " ", "-"))

	randomMu.Lock()
	n := random.Intn(100)
	randomMu.Unlock()

	return fmt.Sprintf("%s-%d", name, n)
}
