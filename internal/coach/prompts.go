// ABOUTME: Prompt text for each coach feature.
// ABOUTME: Every reply is requested in Korean.
package coach

import "fmt"

const chatPersona = "당신은 'FitTrack AI 코치'라는 이름을 가진, 친절하고 격려를 잘하는 피트니스 코치입니다. " +
	"피트니스, 영양, 웰빙에 대해 안전하고 유용하며 동기를 부여하는 조언을 제공하세요. " +
	"의학적 조언이 필요한 경우 항상 전문가와 상담하라고 상기시켜주세요. " +
	"답변은 간결하고 이해하기 쉽게 한국어로 작성해주세요."

func chatGreeting(name string) string {
	return fmt.Sprintf("안녕하세요, %s님! 저는 FitTrack AI 코치입니다. 피트니스에 대해 무엇이든 물어보세요.", name)
}

func routinesPrompt(level, goal string, daysPerWeek int) string {
	return fmt.Sprintf(`Create a weekly workout plan based on the following user profile:
- Fitness Level: %s
- Main Goal: %s
- Workout Days Per Week: %d

Generate a JSON object whose "routines" field is an array of workout routines. Each routine should be for one workout day.
For example, if daysPerWeek is 3, there should be 3 items in the array.
Each routine object should contain:
- routineName: A descriptive name for the day's workout (e.g., 'Full Body Strength A', 'Push Day', 'Legs & Core').
- description: A brief, motivating description of the routine's focus.
- exercises: An array of 5-7 exercise objects.

Each exercise object must include:
- exerciseKey: A machine-readable key from this list: push_up, squat, plank, pull_up, lunge, bicep_curl, jumping_jack, running, deadlift, dumbbell_row, overhead_press, general_cardio, general_strength.
- exerciseName: The name of the exercise in Korean.
- description: A short, clear description of the exercise in Korean.
- sets: A string representing the number of sets (e.g., "3").
- reps: A string representing the repetitions (e.g., "10-12" or "30 seconds").
- rest: A string for rest time in seconds (e.g., "60초").
- youtubeSearchQuery: A simple search query in Korean for finding a video of the exercise on YouTube (e.g., "푸시업 자세").

Provide the entire response in Korean.`, level, goal, daysPerWeek)
}

func caloriesPrompt(meal string) string {
	return fmt.Sprintf(`Analyze the following text describing a meal and estimate the total calories.
Break down the meal into individual food items and estimate their calories as well.
The user input is in Korean. Provide the response in JSON format.
Input: %q`, meal)
}

const recipePrompt = `You are a creative nutritionist. Generate a single, simple, delicious, and healthy low-calorie recipe.
The recipe should be easy to make for someone who is busy.
Provide the response in Korean and in JSON format.`
