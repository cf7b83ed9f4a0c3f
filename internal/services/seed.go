package services

import (
	"context"
	"fmt"

	"recipebox/internal/logging"
	"recipebox/internal/repositories"
	"recipebox/internal/validation"
)

// SeedPassword is the password of every demo user.
const SeedPassword = "password123"

type seedUser struct {
	username, email, bio, picture string
}

var seedUsers = []seedUser{
	{"chef_mario", "mario@recipes.com", "Italian cuisine expert", "https://images.unsplash.com/photo-1577219491135-ce391730fb2c?w=200&h=200&fit=crop&crop=face"},
	{"baker_sarah", "sarah@baking.com", "Professional baker and pastry chef", "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=200&h=200&fit=crop&crop=face"},
	{"healthy_cook", "health@food.com", "Nutritionist and healthy recipe creator", "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=200&h=200&fit=crop&crop=face"},
	{"spice_master", "spice@flavors.com", "Indian and Asian cuisine specialist", "https://images.unsplash.com/photo-1582750433449-648ed127bb54?w=200&h=200&fit=crop&crop=face"},
	{"grill_king", "grill@bbq.com", "BBQ and grilling enthusiast", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200&h=200&fit=crop&crop=face"},
}

var seedRecipes = []RecipeInput{
	{
		Title:        "Classic Spaghetti Carbonara",
		Description:  "Authentic Italian pasta dish with eggs, cheese, and pancetta",
		Ingredients:  "400g spaghetti, 200g pancetta, 4 large eggs, 100g Pecorino Romano cheese, Black pepper, Salt",
		Instructions: "1. Cook spaghetti in salted water.\n2. Fry pancetta until crispy.\n3. Whisk eggs with cheese.\n4. Combine hot pasta with pancetta, then the egg mixture off the heat.",
		CookingTime:  25,
		ImageURL:     "https://images.unsplash.com/photo-1621996346565-e3dbc353d2e5?w=400&h=300&fit=crop",
	},
	{
		Title:        "Chocolate Chip Cookies",
		Description:  "Soft and chewy homemade chocolate chip cookies",
		Ingredients:  "2 cups flour, 1 tsp baking soda, 1 tsp salt, 1 cup butter, 3/4 cup brown sugar, 1/4 cup white sugar, 2 eggs, 2 tsp vanilla, 2 cups chocolate chips",
		Instructions: "1. Preheat oven to 375°F.\n2. Mix dry ingredients.\n3. Cream butter and sugars.\n4. Add eggs and vanilla.\n5. Combine wet and dry, fold in chips and bake 10 minutes.",
		CookingTime:  30,
		ImageURL:     "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=400&h=300&fit=crop",
	},
	{
		Title:        "Quinoa Buddha Bowl",
		Description:  "Nutritious bowl with quinoa, roasted vegetables, and tahini dressing",
		Ingredients:  "1 cup quinoa, 2 cups mixed vegetables, 1/4 cup tahini, 2 tbsp lemon juice, 1 tbsp olive oil, Salt, pepper, herbs",
		Instructions: "1. Cook quinoa according to package directions.\n2. Roast vegetables at 400°F for 25 minutes.\n3. Make tahini dressing with lemon juice.\n4. Assemble the bowls.",
		CookingTime:  45,
		ImageURL:     "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=400&h=300&fit=crop",
	},
	{
		Title:        "Chicken Tikka Masala",
		Description:  "Creamy Indian curry with tender chicken pieces",
		Ingredients:  "1 lb chicken breast, 1 cup yogurt, 2 tbsp tikka masala spice, 1 onion, 3 cloves garlic, 1 can tomatoes, 1/2 cup heavy cream, Basmati rice",
		Instructions: "1. Marinate chicken in yogurt and spices for 2 hours.\n2. Grill chicken pieces.\n3. Sauté onion and garlic.\n4. Add tomatoes and cream, simmer with the chicken.",
		CookingTime:  60,
		ImageURL:     "https://images.unsplash.com/photo-1565557623262-b51c2513a641?w=400&h=300&fit=crop",
	},
	{
		Title:        "BBQ Pulled Pork",
		Description:  "Slow-cooked pork shoulder with homemade BBQ sauce",
		Ingredients:  "3 lb pork shoulder, 2 tbsp brown sugar, 1 tbsp paprika, 1 tsp garlic powder, 1 tsp onion powder, BBQ sauce ingredients",
		Instructions: "1. Rub pork with spice mixture.\n2. Slow cook for 8 hours on low.\n3. Shred meat with forks.\n4. Mix with BBQ sauce.\n5. Serve on buns.",
		CookingTime:  480,
		ImageURL:     "https://images.unsplash.com/photo-1544025162-d76694265947?w=400&h=300&fit=crop",
	},
}

var seedComments = []string{
	"This recipe is amazing! Made it for dinner tonight.",
	"Perfect! My family loved it.",
	"Easy to follow instructions, great results.",
	"Will definitely make this again.",
	"Restaurant quality at home!",
}

// Seed fills an empty database with demo users, recipes, comments and likes.
// It goes through the services so the demo data obeys the same rules as
// real traffic. A database that already has users is left alone.
func Seed(ctx context.Context, store *repositories.Store, auth *AuthService, recipes *RecipeService, social *SocialService) error {
	count, err := store.Users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logging.Info().Int64("users", count).Msg("database not empty, skipping seed")
		return nil
	}

	userIDs := make([]uint, 0, len(seedUsers))
	for _, su := range seedUsers {
		user, err := auth.Register(ctx, validation.Signup{Username: su.username, Email: su.email, Password: SeedPassword})
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.username, err)
		}
		user.Bio = su.bio
		user.ProfilePicture = su.picture
		if err := store.Users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to seed profile of %s: %w", su.username, err)
		}
		userIDs = append(userIDs, user.ID)
	}

	for i, in := range seedRecipes {
		owner := userIDs[i%len(userIDs)]
		recipe, err := recipes.Create(ctx, owner, in)
		if err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", in.Title, err)
		}

		// The next two users comment on and like every recipe.
		for j := 1; j <= 2; j++ {
			fan := userIDs[(i+j)%len(userIDs)]
			if _, err := social.CreateComment(ctx, fan, recipe.ID, seedComments[(i+j)%len(seedComments)]); err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
			if _, err := social.CreateLike(ctx, fan, recipe.ID); err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}
		}
	}

	logging.Info().Int("users", len(userIDs)).Int("recipes", len(seedRecipes)).Msg("seed completed")
	return nil
}
