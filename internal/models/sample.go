// ABOUTME: Built-in sample workouts used to seed an empty workout log.
// ABOUTME: IDs are fixed so seeded data is stable across runs.
package models

// SampleWorkouts returns a fresh copy of the seed workouts.
func SampleWorkouts() []Workout {
	return []Workout{
		{
			ID: "w1", Date: "2023-10-26", Name: "가슴/삼두 운동",
			Exercises: []WorkoutExercise{
				{ID: "e1", Name: "벤치프레스", Sets: []SetDetail{{ID: "s1", Weight: 60, Reps: 12}, {ID: "s2", Weight: 65, Reps: 10}, {ID: "s2a", Weight: 70, Reps: 8}}},
				{ID: "e2", Name: "딥스", Sets: []SetDetail{{ID: "s3", Weight: 0, Reps: 15}, {ID: "s4", Weight: 0, Reps: 12}}},
			},
		},
		{
			ID: "w2", Date: "2023-10-24", Name: "등/이두 운동",
			Exercises: []WorkoutExercise{
				{ID: "e3", Name: "데드리프트", Sets: []SetDetail{{ID: "s5", Weight: 100, Reps: 5}, {ID: "s5a", Weight: 110, Reps: 3}}},
				{ID: "e4", Name: "풀업", Sets: []SetDetail{{ID: "s6", Weight: 0, Reps: 8}, {ID: "s7", Weight: 0, Reps: 7}}},
				{ID: "e5", Name: "바벨 컬", Sets: []SetDetail{{ID: "s8", Weight: 20, Reps: 10}}},
			},
		},
		{
			ID: "w3", Date: "2023-10-22", Name: "하체 운동",
			Exercises: []WorkoutExercise{
				{ID: "e6", Name: "스쿼트", Sets: []SetDetail{{ID: "s9", Weight: 80, Reps: 10}, {ID: "s10", Weight: 85, Reps: 8}, {ID: "s11", Weight: 85, Reps: 8}}},
				{ID: "e7", Name: "레그 프레스", Sets: []SetDetail{{ID: "s12", Weight: 150, Reps: 12}, {ID: "s13", Weight: 160, Reps: 10}}},
			},
		},
		{
			ID: "w4", Date: "2023-10-19", Name: "가슴/삼두 운동",
			Exercises: []WorkoutExercise{
				{ID: "e8", Name: "벤치프레스", Sets: []SetDetail{{ID: "s14", Weight: 60, Reps: 10}, {ID: "s15", Weight: 65, Reps: 8}}},
				{ID: "e9", Name: "케이블 크로스오버", Sets: []SetDetail{{ID: "s16", Weight: 15, Reps: 15}, {ID: "s17", Weight: 15, Reps: 12}}},
			},
		},
		{
			ID: "w5", Date: "2023-10-17", Name: "등/이두 운동",
			Exercises: []WorkoutExercise{
				{ID: "e10", Name: "데드리프트", Sets: []SetDetail{{ID: "s18", Weight: 90, Reps: 5}, {ID: "s19", Weight: 100, Reps: 5}}},
				{ID: "e11", Name: "랫 풀 다운", Sets: []SetDetail{{ID: "s20", Weight: 50, Reps: 12}, {ID: "s21", Weight: 55, Reps: 10}}},
			},
		},
		{
			ID: "w6", Date: "2023-10-15", Name: "하체 운동",
			Exercises: []WorkoutExercise{
				{ID: "e12", Name: "스쿼트", Sets: []SetDetail{{ID: "s22", Weight: 70, Reps: 10}, {ID: "s23", Weight: 80, Reps: 8}, {ID: "s24", Weight: 80, Reps: 8}}},
				{ID: "e13", Name: "런지", Sets: []SetDetail{{ID: "s25", Weight: 10, Reps: 12}, {ID: "s26", Weight: 10, Reps: 12}}},
			},
		},
		{
			ID: "w7", Date: "2023-10-12", Name: "가슴 운동",
			Exercises: []WorkoutExercise{
				{ID: "e14", Name: "벤치프레스", Sets: []SetDetail{{ID: "s27", Weight: 55, Reps: 12}, {ID: "s28", Weight: 60, Reps: 10}}},
			},
		},
		{
			ID: "w8", Date: "2023-10-05", Name: "전신 운동",
			Exercises: []WorkoutExercise{
				{ID: "e15", Name: "스쿼트", Sets: []SetDetail{{ID: "s29", Weight: 60, Reps: 12}, {ID: "s30", Weight: 70, Reps: 10}}},
				{ID: "e16", Name: "벤치프레스", Sets: []SetDetail{{ID: "s31", Weight: 50, Reps: 10}}},
				{ID: "e17", Name: "데드리프트", Sets: []SetDetail{{ID: "s32", Weight: 80, Reps: 8}}},
			},
		},
		{
			ID: "w9", Date: "2023-09-28", Name: "전신 운동",
			Exercises: []WorkoutExercise{
				{ID: "e18", Name: "스쿼트", Sets: []SetDetail{{ID: "s33", Weight: 60, Reps: 10}}},
				{ID: "e19", Name: "벤치프레스", Sets: []SetDetail{{ID: "s34", Weight: 50, Reps: 8}}},
				{ID: "e20", Name: "데드리프트", Sets: []SetDetail{{ID: "s35", Weight: 70, Reps: 8}}},
			},
		},
		{
			ID: "w10", Date: "2023-09-21", Name: "상체 운동",
			Exercises: []WorkoutExercise{
				{ID: "e21", Name: "벤치프레스", Sets: []SetDetail{{ID: "s36", Weight: 45, Reps: 10}}},
				{ID: "e22", Name: "풀업", Sets: []SetDetail{{ID: "s37", Weight: 0, Reps: 5}}},
			},
		},
	}
}
