package question

import "encoding/json"

func raw(s string) json.RawMessage { return json.RawMessage(s) }

// The built-in bank: ten easy DSA questions with their visible example cases.
var defaultQuestions = []Question{
	{
		ID:    1,
		Title: "Two Sum",
		Description: `Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.

You may assume that each input would have exactly one solution, and you may not use the same element twice.`,
		Difficulty: "easy",
		FuncName:   "twoSum",
		ParamNames: []string{"nums", "target"},
		Template: `function twoSum(nums, target) {
  // Write your code here
  return [];
}`,
		Examples: []Example{
			{Inputs: raw(`[[2, 7, 11, 15], 9]`), Expected: raw(`[0, 1]`)},
			{Inputs: raw(`[[3, 2, 4], 6]`), Expected: raw(`[1, 2]`)},
			{Inputs: raw(`[[3, 3], 6]`), Expected: raw(`[0, 1]`)},
		},
	},
	{
		ID:    2,
		Title: "Valid Parentheses",
		Description: `Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid.

An input string is valid if:
1. Open brackets must be closed by the same type of brackets.
2. Open brackets must be closed in the correct order.`,
		Difficulty: "easy",
		FuncName:   "isValid",
		ParamNames: []string{"s"},
		Template: `function isValid(s) {
  // Write your code here
  return false;
}`,
		Examples: []Example{
			{Inputs: raw(`["()"]`), Expected: raw(`true`)},
			{Inputs: raw(`["()[]{}"]`), Expected: raw(`true`)},
			{Inputs: raw(`["(]"]`), Expected: raw(`false`)},
		},
	},
	{
		ID:    3,
		Title: "Palindrome Number",
		Description: `Given an integer x, return true if x is a palindrome, and false otherwise.

A palindrome number reads the same backward as forward.`,
		Difficulty: "easy",
		FuncName:   "isPalindrome",
		ParamNames: []string{"x"},
		Template: `function isPalindrome(x) {
  // Write your code here
  return false;
}`,
		Examples: []Example{
			{Inputs: raw(`[121]`), Expected: raw(`true`)},
			{Inputs: raw(`[-121]`), Expected: raw(`false`)},
			{Inputs: raw(`[10]`), Expected: raw(`false`)},
		},
	},
	{
		ID:    4,
		Title: "Contains Duplicate",
		Description: `Given an integer array nums, return true if any value appears at least twice in the array, and return false if every element is distinct.`,
		Difficulty: "easy",
		FuncName:   "containsDuplicate",
		ParamNames: []string{"nums"},
		Template: `function containsDuplicate(nums) {
  // Write your code here
  return false;
}`,
		Examples: []Example{
			{Inputs: raw(`[[1, 2, 3, 1]]`), Expected: raw(`true`)},
			{Inputs: raw(`[[1, 2, 3, 4]]`), Expected: raw(`false`)},
			{Inputs: raw(`[[1, 1, 1, 3, 3]]`), Expected: raw(`true`)},
		},
	},
	{
		ID:    5,
		Title: "Best Time to Buy and Sell Stock",
		Description: `You are given an array prices where prices[i] is the price of a given stock on the i-th day.

You want to maximize your profit by choosing a single day to buy one stock and choosing a different day in the future to sell that stock.

Return the maximum profit you can achieve from this transaction. If you cannot achieve any profit, return 0.`,
		Difficulty: "easy",
		FuncName:   "maxProfit",
		ParamNames: []string{"prices"},
		Template: `function maxProfit(prices) {
  // Write your code here
  return 0;
}`,
		Examples: []Example{
			{Inputs: raw(`[[7, 1, 5, 3, 6, 4]]`), Expected: raw(`5`)},
			{Inputs: raw(`[[7, 6, 4, 3, 1]]`), Expected: raw(`0`)},
			{Inputs: raw(`[[1, 2]]`), Expected: raw(`1`)},
		},
	},
	{
		ID:    6,
		Title: "Climbing Stairs",
		Description: `You are climbing a staircase. It takes n steps to reach the top.

Each time you can either climb 1 or 2 steps. In how many distinct ways can you climb to the top?`,
		Difficulty: "easy",
		FuncName:   "climbStairs",
		ParamNames: []string{"n"},
		Template: `function climbStairs(n) {
  // Write your code here
  return 0;
}`,
		Examples: []Example{
			{Inputs: raw(`[2]`), Expected: raw(`2`)},
			{Inputs: raw(`[3]`), Expected: raw(`3`)},
			{Inputs: raw(`[1]`), Expected: raw(`1`)},
		},
	},
	{
		ID:    7,
		Title: "Single Number",
		Description: `Given a non-empty array of integers nums, every element appears twice except for one. Find that single one.

You must implement a solution with a linear runtime complexity and use only constant extra space.`,
		Difficulty: "easy",
		FuncName:   "singleNumber",
		ParamNames: []string{"nums"},
		Template: `function singleNumber(nums) {
  // Write your code here
  return 0;
}`,
		Examples: []Example{
			{Inputs: raw(`[[2, 2, 1]]`), Expected: raw(`1`)},
			{Inputs: raw(`[[4, 1, 2, 1, 2]]`), Expected: raw(`4`)},
			{Inputs: raw(`[[1]]`), Expected: raw(`1`)},
		},
	},
	{
		ID:    8,
		Title: "Maximum Subarray",
		Description: `Given an integer array nums, find the subarray with the largest sum, and return its sum.`,
		Difficulty: "easy",
		FuncName:   "maxSubArray",
		ParamNames: []string{"nums"},
		Template: `function maxSubArray(nums) {
  // Write your code here
  return 0;
}`,
		Examples: []Example{
			{Inputs: raw(`[[-2, 1, -3, 4, -1, 2, 1, -5, 4]]`), Expected: raw(`6`)},
			{Inputs: raw(`[[1]]`), Expected: raw(`1`)},
			{Inputs: raw(`[[5, 4, -1, 7, 8]]`), Expected: raw(`23`)},
		},
	},
	{
		ID:    9,
		Title: "Fizz Buzz",
		Description: `Given an integer n, return a string array answer where:
- answer[i] == "FizzBuzz" if i is divisible by 3 and 5
- answer[i] == "Fizz" if i is divisible by 3
- answer[i] == "Buzz" if i is divisible by 5
- answer[i] == i (as string) otherwise

Note: i is 1-indexed (1 to n).`,
		Difficulty: "easy",
		FuncName:   "fizzBuzz",
		ParamNames: []string{"n"},
		Template: `function fizzBuzz(n) {
  // Write your code here
  return [];
}`,
		Examples: []Example{
			{Inputs: raw(`[3]`), Expected: raw(`["1", "2", "Fizz"]`)},
			{Inputs: raw(`[5]`), Expected: raw(`["1", "2", "Fizz", "4", "Buzz"]`)},
			{Inputs: raw(`[15]`), Expected: raw(`["1","2","Fizz","4","Buzz","Fizz","7","8","Fizz","Buzz","11","Fizz","13","14","FizzBuzz"]`)},
		},
	},
	{
		ID:    10,
		Title: "Roman to Integer",
		Description: `Roman numerals are represented by seven different symbols: I, V, X, L, C, D and M.

Symbol -> Value: I=1, V=5, X=10, L=50, C=100, D=500, M=1000

For example, 2 is written as II, 12 is XII, 27 is XXVII. The rule: when a smaller numeral is before a larger one, subtract it (e.g. IV=4, IX=9).

Given a roman numeral string, convert it to an integer.`,
		Difficulty: "easy",
		FuncName:   "romanToInt",
		ParamNames: []string{"s"},
		Template: `function romanToInt(s) {
  // Write your code here
  return 0;
}`,
		Examples: []Example{
			{Inputs: raw(`["III"]`), Expected: raw(`3`)},
			{Inputs: raw(`["LVIII"]`), Expected: raw(`58`)},
			{Inputs: raw(`["MCMXCIV"]`), Expected: raw(`1994`)},
		},
	},
}
