package api

import (
	"net/http"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/model"
)

var faqEntries = []model.FAQEntry{
	{
		Question: "What is the purpose of this project?",
		Answer: "This project aims to detect leaks using sensor data and predict the leak rate " +
			"if a leak is detected. It utilizes machine learning models trained on features " +
			"such as Concentration, Pressure, and Resistance.",
	},
	{
		Question: "Which machine learning models are used in this project?",
		Answer: "The project uses a RandomForestClassifier for binary leak detection and a " +
			"RandomForestRegressor for leak rate prediction.",
	},
	{
		Question: "How does the model handle missing values and outliers?",
		Answer: "The dataset is preprocessed by dropping null values. Outliers are detected " +
			"using the Interquartile Range (IQR) method and removed to improve model performance.",
	},
	{
		Question: "How does a user provide input for real-time predictions?",
		Answer: "The program prompts the user to enter sensor values (CH4L, CH4R, P, RsL, RsR). " +
			"These values are scaled and fed into the trained models to determine if a leak " +
			"is present and estimate the leak rate.",
	},
	{
		Question: "How are the results visualized?",
		Answer: "Predictions are shown directly on the page, and every positive detection is " +
			"recorded in the leak alert history table for later review.",
	},
}

func handleFAQ(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, faqEntries)
}
